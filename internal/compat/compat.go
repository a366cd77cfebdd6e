// Package compat decides whether a machine qualifies for the OS upgrade.
//
// The engine reconciles three inputs: the normalized processor identity, the
// records extracted from the manufacturer's support table, and the observed
// platform facts. CPU-tier matching is deliberately permissive substring
// containment over the flattened record text — a brand fragment like
// "Ryzen 5" matches any record containing it. That is a documented source of
// false positives in the data this system consumes, and tightening it would
// change verdicts; it stays as-is.
package compat

import (
	"fmt"

	"github.com/osready/osready/internal/cpuid"
)

// Verdict is the outcome of one compatibility check, with every contributing
// sub-check retained so the report can itemize them.
type Verdict struct {
	// IsVM records which branch produced the verdict. The VM branch skips
	// all CPU checks and never triggers a table fetch.
	IsVM bool

	// Identity is the normalized processor identity; nil on the VM branch
	// or after a parse failure.
	Identity *cpuid.Identity

	// ParseFailure is set when the raw processor string could not be
	// normalized. The processor then counts as unconditionally
	// non-compatible rather than guessed at.
	ParseFailure bool

	// RetrievalFailed is set when the vendor table could not be fetched
	// and policy degraded the run to zero records.
	RetrievalFailed bool

	// RecordCount is the number of support-table records consulted.
	RecordCount int

	ManufacturerOK bool
	BrandOK        bool
	ModelOK        bool
	PlatformOK     bool

	// MemoryChecked reports whether the memory predicate was in scope for
	// this branch; MemoryOK is meaningful only when it was.
	MemoryChecked bool
	MemoryOK      bool

	Final bool
}

// UnsupportedManufacturerError aborts the run when a physical machine's
// manufacturer is outside the recognized set. This is fatal and distinct
// from a negative verdict: there is no vendor page to check against, so no
// verdict can be produced.
type UnsupportedManufacturerError struct {
	Manufacturer string
}

func (e *UnsupportedManufacturerError) Error() string {
	return fmt.Sprintf("unsupported processor manufacturer %q", e.Manufacturer)
}

// RetrievalError is returned when vendor table retrieval failed and policy
// demands an immediate abort instead of degrading to zero records.
type RetrievalError struct {
	Manufacturer string
	Err          error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("vendor table retrieval failed for %s: %v", e.Manufacturer, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}
