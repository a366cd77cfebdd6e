package compat

import (
	"context"
	"strings"

	"github.com/osready/osready/internal/cpuid"
	"github.com/osready/osready/internal/facts"
	"github.com/osready/osready/internal/htmltable"
	"github.com/osready/osready/internal/logging"
	"github.com/osready/osready/internal/policy"
	"github.com/osready/osready/internal/support"
)

// recognizedManufacturers are the manufacturers with a vendor support page.
// Anything else on a physical machine is an UnsupportedManufacturerError.
var recognizedManufacturers = map[string]bool{
	cpuid.ManufacturerIntel:    true,
	cpuid.ManufacturerAMD:      true,
	cpuid.ManufacturerQualcomm: true,
}

// Engine runs the compatibility check. The Retriever is only consulted on
// the physical branch; VM runs never fetch.
type Engine struct {
	retriever support.Retriever
	log       logging.Logger
}

// NewEngine creates an engine. A nil logger discards diagnostics.
func NewEngine(retriever support.Retriever, log logging.Logger) *Engine {
	if log == nil {
		log = logging.Noop()
	}
	return &Engine{retriever: retriever, log: log}
}

// Check produces the compatibility verdict for one run.
//
// Virtual machines are judged on platform facts alone; no identity is
// derived and no table is fetched. Physical machines additionally require a
// complete processor identity and a manufacturer/brand/model match against
// the vendor table. A parse failure downgrades to an unconditionally
// negative verdict; an unrecognized manufacturer and (under the abort
// policy) a retrieval failure are fatal.
func (e *Engine) Check(ctx context.Context, f *facts.Facts, pol *policy.Policy) (*Verdict, error) {
	if f.IsVM {
		e.log.Info("virtual machine detected, skipping CPU checks")
		v := &Verdict{IsVM: true}
		applyPlatformChecks(v, f, pol)
		v.Final = v.PlatformOK
		e.logVerdict(v)
		return v, nil
	}

	id, err := cpuid.Normalize(f.RawProcessor)
	if err != nil {
		e.log.Warn("processor string did not normalize, treating as non-compatible",
			"raw", f.RawProcessor)
		v := &Verdict{ParseFailure: true}
		applyPlatformChecks(v, f, pol)
		v.Final = false
		e.logVerdict(v)
		return v, nil
	}
	e.log.Info("normalized processor identity",
		"manufacturer", id.Manufacturer, "brand", id.Brand, "model", id.Model)

	return e.checkPhysical(ctx, id, f, pol)
}

// checkPhysical runs the physical-machine branch for a complete identity.
func (e *Engine) checkPhysical(ctx context.Context, id cpuid.Identity, f *facts.Facts, pol *policy.Policy) (*Verdict, error) {
	if !recognizedManufacturers[id.Manufacturer] {
		return nil, &UnsupportedManufacturerError{Manufacturer: id.Manufacturer}
	}

	v := &Verdict{Identity: &id}

	res := e.retriever.Retrieve(ctx, id.Manufacturer)
	records := res.Records
	if res.Failed() {
		if pol.RetrievalFailure == policy.RetrievalAbort {
			return nil, &RetrievalError{Manufacturer: id.Manufacturer, Err: res.Err}
		}
		e.log.Warn("vendor table retrieval failed, continuing with no records",
			"manufacturer", id.Manufacturer, "url", res.URL, "error", res.Err)
		v.RetrievalFailed = true
		records = nil
	} else {
		e.log.Info("retrieved vendor support table",
			"url", res.URL, "records", len(records))
	}
	v.RecordCount = len(records)

	decide(v, id, records, f, pol)
	e.logVerdict(v)
	return v, nil
}

// decide fills in the verdict's checks from identity, records, and facts.
// It is a pure reduction: all three CPU checks are always evaluated (no
// short-circuiting) so the report can itemize each.
func decide(v *Verdict, id cpuid.Identity, records []htmltable.Record, f *facts.Facts, pol *policy.Policy) {
	v.ManufacturerOK = anyContains(pol.Manufacturers, id.Manufacturer)
	v.BrandOK = anyRecordContains(records, id.Brand)
	v.ModelOK = anyRecordContains(records, id.Model)

	applyPlatformChecks(v, f, pol)

	v.Final = v.ManufacturerOK && v.BrandOK && v.ModelOK && v.PlatformOK
}

// applyPlatformChecks evaluates the firmware posture and, when in scope for
// this branch, the memory-sufficiency predicate.
func applyPlatformChecks(v *Verdict, f *facts.Facts, pol *policy.Policy) {
	v.PlatformOK = f.BootedUEFI && f.SecureBoot && f.TPMActive && f.TPMEnabled && f.TPMIsV2

	if pol.MemoryCheckApplies(f.IsVM) {
		v.MemoryChecked = true
		v.MemoryOK = f.MemoryMB >= pol.MemoryMinMB
		v.PlatformOK = v.PlatformOK && v.MemoryOK
	}
}

// anyContains reports whether any entry contains needle as a substring.
func anyContains(entries []string, needle string) bool {
	for _, entry := range entries {
		if strings.Contains(entry, needle) {
			return true
		}
	}
	return false
}

// anyRecordContains reports whether any field of any record contains needle
// as a substring, case as scraped.
func anyRecordContains(records []htmltable.Record, needle string) bool {
	for _, rec := range records {
		for _, value := range rec.Values() {
			if strings.Contains(value, needle) {
				return true
			}
		}
	}
	return false
}

// logVerdict traces every intermediate boolean of the verdict.
func (e *Engine) logVerdict(v *Verdict) {
	if v.IsVM {
		e.log.Info("verdict",
			"branch", "vm",
			"platform_ok", v.PlatformOK,
			"memory_checked", v.MemoryChecked,
			"memory_ok", v.MemoryOK,
			"final", v.Final)
		return
	}
	e.log.Info("verdict",
		"branch", "physical",
		"parse_failure", v.ParseFailure,
		"retrieval_failed", v.RetrievalFailed,
		"records", v.RecordCount,
		"manufacturer_ok", v.ManufacturerOK,
		"brand_ok", v.BrandOK,
		"model_ok", v.ModelOK,
		"platform_ok", v.PlatformOK,
		"memory_checked", v.MemoryChecked,
		"memory_ok", v.MemoryOK,
		"final", v.Final)
}
