package cpuid

import (
	"regexp"
	"strings"
)

// repartitionRule rebalances the brand/model split for one irregular product
// family. Rules are scoped by manufacturer and, for brand-fold rules, by the
// brand produced by the initial split. Series rules (empty brand scope)
// instead match the whole cleaned text when the split produced nothing.
type repartitionRule struct {
	name         string
	manufacturer string
	// brand scopes the rule to the current brand candidate. Empty means
	// the rule applies only when brand and model are both still empty,
	// with pattern matched against the whole cleaned text.
	brand   string
	pattern *regexp.Regexp
	apply   func(id *Identity, match string)
}

// repartitionRules is evaluated in order; the first matching rule wins.
// Longer markers precede their prefixes (Threadripper PRO before
// Threadripper, "<tier> PRO" before the bare tier) so a greedy fold never
// strands half a marker in the model.
var repartitionRules = []repartitionRule{
	{
		name:         "ryzen embedded R2000 series",
		manufacturer: ManufacturerAMD,
		brand:        "Ryzen",
		pattern:      regexp.MustCompile(`^(Embedded R2000 Series)(?: |$)`),
		apply:        foldIntoBrand,
	},
	{
		name:         "ryzen threadripper pro",
		manufacturer: ManufacturerAMD,
		brand:        "Ryzen",
		pattern:      regexp.MustCompile(`^(Threadripper PRO)(?: |$)`),
		apply:        foldIntoBrand,
	},
	{
		name:         "ryzen threadripper",
		manufacturer: ManufacturerAMD,
		brand:        "Ryzen",
		pattern:      regexp.MustCompile(`^(Threadripper)(?: |$)`),
		apply:        foldIntoBrand,
	},
	{
		name:         "ryzen embedded",
		manufacturer: ManufacturerAMD,
		brand:        "Ryzen",
		pattern:      regexp.MustCompile(`^(Embedded)(?: |$)`),
		apply:        foldIntoBrand,
	},
	{
		name:         "ryzen pro tier",
		manufacturer: ManufacturerAMD,
		brand:        "Ryzen",
		pattern:      regexp.MustCompile(`^(\d+ PRO)(?: |$)`),
		apply:        foldIntoBrand,
	},
	{
		name:         "ryzen tier",
		manufacturer: ManufacturerAMD,
		brand:        "Ryzen",
		pattern:      regexp.MustCompile(`^(\d+)(?: |$)`),
		apply:        foldIntoBrand,
	},
	{
		name:         "athlon II",
		manufacturer: ManufacturerAMD,
		brand:        "Athlon",
		pattern:      regexp.MustCompile(`^(II)(?: |$)`),
		apply:        foldIntoBrand,
	},
	{
		name:         "intel N-series",
		manufacturer: ManufacturerIntel,
		pattern:      regexp.MustCompile(`^N\d+$`),
		apply:        assignSeries("N-series"),
	},
	{
		name:         "amd A-series",
		manufacturer: ManufacturerAMD,
		pattern:      regexp.MustCompile(`^A\d+-\d+`),
		apply:        assignSeries("A-series"),
	},
}

// applyRepartitionRules runs the rule table against the current identity.
// The cleaned text is needed by series rules, whose pattern applies to the
// whole string rather than the model candidate.
func applyRepartitionRules(id *Identity, cleaned string) {
	for _, r := range repartitionRules {
		if r.manufacturer != id.Manufacturer {
			continue
		}

		if r.brand != "" {
			if id.Brand != r.brand {
				continue
			}
			m := r.pattern.FindStringSubmatch(id.Model)
			if m == nil {
				continue
			}
			r.apply(id, m[1])
			return
		}

		// Series rule: only when the split produced nothing.
		if id.Brand != "" || id.Model != "" {
			continue
		}
		if m := r.pattern.FindString(cleaned); m != "" {
			r.apply(id, m)
			return
		}
	}
}

// foldIntoBrand moves the matched fragment from the front of the model into
// the brand.
func foldIntoBrand(id *Identity, match string) {
	id.Brand = id.Brand + " " + match
	id.Model = strings.TrimSpace(strings.TrimPrefix(id.Model, match))
}

// assignSeries returns an apply func that sets a synthetic series brand and
// takes the matched text as the model.
func assignSeries(series string) func(id *Identity, match string) {
	return func(id *Identity, match string) {
		id.Brand = series
		id.Model = match
	}
}
