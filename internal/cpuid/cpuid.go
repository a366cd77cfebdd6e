// Package cpuid normalizes freeform processor descriptive strings from
// hardware inventory into a structured (manufacturer, brand, model) identity.
//
// Vendor naming conventions are irregular across the three supported
// manufacturers and their product families, so normalization runs a fixed
// ordered pipeline: cosmetic cleanup, manufacturer detection, a first-token
// brand/model split, and a table of manufacturer-scoped repartition rules
// that handle the irregular families (Ryzen tiers, Athlon II, Intel N-series,
// AMD A-series).
package cpuid

import "fmt"

// Recognized manufacturer names as they appear in inventory strings.
const (
	ManufacturerIntel    = "Intel"
	ManufacturerAMD      = "AMD"
	ManufacturerQualcomm = "Qualcomm"
)

// Identity is the normalized processor identity derived from a raw
// inventory string. All three fields are non-empty; Normalize never
// returns a partially populated Identity.
type Identity struct {
	Manufacturer string
	Brand        string
	Model        string
}

// String returns the identity in "Manufacturer Brand Model" form.
func (id Identity) String() string {
	return fmt.Sprintf("%s %s %s", id.Manufacturer, id.Brand, id.Model)
}

// ParseError reports that a raw processor string could not be reduced to a
// complete identity. It carries the original string for diagnostics.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot derive processor identity from %q", e.Raw)
}
