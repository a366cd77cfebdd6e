package cpuid

import (
	"regexp"
	"strings"
)

// Cosmetic noise stripped before any structural parsing. Substitutions are
// applied in order; each operates on the previous step's output.
var (
	clockSuffixRe = regexp.MustCompile(` @ \d+\.\d+GHz`)
	genPrefixRe   = regexp.MustCompile(`^\d+th Gen `)
	coreSuffixRe  = regexp.MustCompile(` \d+-Core Processor$`)
)

// trademarkMarkers are removed wherever they occur. Inventory sources emit
// both the ASCII and the Unicode forms.
var trademarkMarkers = []string{"(R)", "(TM)", "®", "™"}

// intelSubBrands imply manufacturer Intel when no explicit manufacturer
// token is present. The sub-brand token itself is left in place so the
// brand/model split still sees it.
var intelSubBrands = []string{"Pentium", "Celeron", "Xeon", "Core", "Atom", "Itanium"}

// brandModelRe splits cleaned text into a first-token brand candidate and
// the remainder as the model candidate. A single-token string does not
// match, leaving both candidates empty for the series rules to claim.
var brandModelRe = regexp.MustCompile(`^(\S+) (\S.*)$`)

// Normalize converts a raw processor descriptive string into a complete
// Identity. It is pure and deterministic. If any of manufacturer, brand, or
// model cannot be resolved, it returns a ParseError carrying the raw string;
// it never returns a partially populated Identity.
func Normalize(raw string) (Identity, error) {
	text := cleanup(raw)

	manufacturer, text := detectManufacturer(text)
	brand, model := splitBrandModel(text)

	id := Identity{
		Manufacturer: manufacturer,
		Brand:        brand,
		Model:        model,
	}
	applyRepartitionRules(&id, text)

	if id.Manufacturer == "" || id.Brand == "" || id.Model == "" {
		return Identity{}, &ParseError{Raw: raw}
	}
	return id, nil
}

// cleanup strips trademark markers, the literal " CPU" suffix token, a
// clock-speed suffix, a leading generation prefix, and a trailing core-count
// suffix, in that order.
func cleanup(raw string) string {
	text := raw
	for _, marker := range trademarkMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}
	text = strings.ReplaceAll(text, " CPU", "")
	text = clockSuffixRe.ReplaceAllString(text, "")
	text = genPrefixRe.ReplaceAllString(text, "")
	text = coreSuffixRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// detectManufacturer resolves the manufacturer from the cleaned text.
//
// An explicit Intel/AMD/Qualcomm token wins and is removed (with its
// trailing space) so the brand/model split operates on the remainder.
// Otherwise a known Intel sub-brand token implies Intel without removing
// anything. If neither applies, the manufacturer stays unresolved and the
// text is returned unchanged.
func detectManufacturer(text string) (manufacturer, remainder string) {
	for _, m := range []string{ManufacturerIntel, ManufacturerAMD, ManufacturerQualcomm} {
		if !containsToken(text, m) {
			continue
		}
		remainder = strings.Replace(text, m+" ", "", 1)
		if remainder == text {
			// Token present without a trailing space (e.g. at end of text).
			remainder = strings.Replace(text, m, "", 1)
		}
		return m, strings.TrimSpace(remainder)
	}

	for _, sub := range intelSubBrands {
		if containsToken(text, sub) {
			return ManufacturerIntel, text
		}
	}

	return "", text
}

// containsToken reports whether token occurs in text as a whole
// whitespace-delimited word.
func containsToken(text, token string) bool {
	for _, field := range strings.Fields(text) {
		if field == token {
			return true
		}
	}
	return false
}

// splitBrandModel splits the remaining text into a brand (first token) and
// model (everything after it). Text with fewer than two tokens yields two
// empty candidates, which the series repartition rules may still resolve.
func splitBrandModel(text string) (brand, model string) {
	m := brandModelRe.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}
