// Package policy loads the osready check policy from a sandboxed Lua file.
//
// The policy controls presentation mode, the memory-sufficiency check (a
// configurable inclusion — the retained revisions of the original check
// disagreed on its scope), the manufacturer allowlist, vendor page
// overrides, and what to do when table retrieval fails. A read-only `facts`
// table is injected into the Lua state before the policy runs, so a policy
// can condition its choices on the observed platform.
package policy

import (
	"fmt"

	"github.com/osready/osready/internal/cpuid"
)

// Mode selects the negative-outcome presentation path.
type Mode string

const (
	// ModeSilent exits with a code and no dialog.
	ModeSilent Mode = "silent"
	// ModeGUIHard shows a blocking dialog with no operator override.
	ModeGUIHard Mode = "gui-hard"
	// ModeGUISoft shows a blocking dialog the operator may override.
	ModeGUISoft Mode = "gui-soft"
)

// MemoryScope names the branches the memory-sufficiency predicate applies to.
type MemoryScope string

const (
	MemoryBoth     MemoryScope = "both"
	MemoryPhysical MemoryScope = "physical"
	MemoryVM       MemoryScope = "vm"
	MemoryOff      MemoryScope = "off"
)

// RetrievalPolicy selects the behavior when vendor table retrieval fails.
type RetrievalPolicy string

const (
	// RetrievalDegrade continues with zero records; the CPU-tier checks
	// then evaluate false.
	RetrievalDegrade RetrievalPolicy = "degrade"
	// RetrievalAbort fails the run immediately, matching the legacy
	// revision of the check.
	RetrievalAbort RetrievalPolicy = "abort"
)

// Dialog carries what the presentation collaborator needs for the blocking
// modal shown on a negative verdict in GUI modes.
type Dialog struct {
	Organization string
	Package      string
	Title        string
	Message      string
	ErrorCode    int
	TimeoutSec   int
	Reboot       bool
	Step         string
}

// Policy is the effective check configuration for one run.
type Policy struct {
	Mode             Mode
	MemoryMinMB      uint64
	MemoryCheck      MemoryScope
	Manufacturers    []string
	URLs             map[string]string
	RetrievalFailure RetrievalPolicy
	Dialog           Dialog
}

// Default returns the policy used when no policy file exists.
func Default() *Policy {
	return &Policy{
		Mode:        ModeSilent,
		MemoryMinMB: 4096,
		MemoryCheck: MemoryBoth,
		Manufacturers: []string{
			cpuid.ManufacturerIntel,
			cpuid.ManufacturerAMD,
			cpuid.ManufacturerQualcomm,
		},
		RetrievalFailure: RetrievalDegrade,
		Dialog: Dialog{
			Organization: "osready",
			Package:      "os-upgrade",
			Title:        "Upgrade readiness check failed",
			Message:      "This machine does not meet the processor or firmware\nrequirements for the OS upgrade.",
			ErrorCode:    1,
			TimeoutSec:   600,
			Step:         "compatibility-check",
		},
	}
}

// MemoryCheckApplies reports whether the memory predicate is in scope for
// the given branch.
func (p *Policy) MemoryCheckApplies(isVM bool) bool {
	switch p.MemoryCheck {
	case MemoryBoth:
		return true
	case MemoryPhysical:
		return !isVM
	case MemoryVM:
		return isVM
	default:
		return false
	}
}

// Validate checks the policy for values the engine cannot act on.
func (p *Policy) Validate() error {
	switch p.Mode {
	case ModeSilent, ModeGUIHard, ModeGUISoft:
	default:
		return fmt.Errorf("invalid mode %q (want silent, gui-hard, or gui-soft)", p.Mode)
	}

	switch p.MemoryCheck {
	case MemoryBoth, MemoryPhysical, MemoryVM, MemoryOff:
	default:
		return fmt.Errorf("invalid memory_check %q (want both, physical, vm, or off)", p.MemoryCheck)
	}

	switch p.RetrievalFailure {
	case RetrievalDegrade, RetrievalAbort:
	default:
		return fmt.Errorf("invalid retrieval_failure %q (want degrade or abort)", p.RetrievalFailure)
	}

	if len(p.Manufacturers) == 0 {
		return fmt.Errorf("manufacturer allowlist is empty")
	}

	return nil
}
