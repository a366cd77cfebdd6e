package compat

import (
	"fmt"
	"strings"
)

const reportRule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"

// FormatReport renders the verdict as a user-facing report with every
// contributing check itemized.
func FormatReport(v *Verdict) string {
	var sb strings.Builder
	sb.Grow(1024)

	sb.WriteString("\n")
	sb.WriteString(reportRule)
	sb.WriteString("UPGRADE READINESS REPORT\n")
	sb.WriteString(reportRule)
	sb.WriteString("\n")

	if v.IsVM {
		sb.WriteString("Machine type: virtual machine (CPU checks skipped)\n\n")
	} else {
		sb.WriteString("Machine type: physical\n")
		switch {
		case v.ParseFailure:
			sb.WriteString("Processor:    could not be identified (parse failure)\n")
		case v.Identity != nil:
			fmt.Fprintf(&sb, "Processor:    %s / %s / %s\n",
				v.Identity.Manufacturer, v.Identity.Brand, v.Identity.Model)
		}
		if v.RetrievalFailed {
			sb.WriteString("Vendor table: retrieval failed, matched against no records\n")
		} else {
			fmt.Fprintf(&sb, "Vendor table: %d records\n", v.RecordCount)
		}
		sb.WriteString("\n")

		sb.WriteString(formatCheck("Manufacturer recognized", v.ManufacturerOK))
		sb.WriteString(formatCheck("Brand listed by vendor", v.BrandOK))
		sb.WriteString(formatCheck("Model listed by vendor", v.ModelOK))
	}

	sb.WriteString(formatCheck("Platform requirements", v.PlatformOK))
	if v.MemoryChecked {
		sb.WriteString(formatCheck("  includes memory threshold", v.MemoryOK))
	}

	sb.WriteString("\n")
	sb.WriteString(reportRule)
	if v.Final {
		sb.WriteString("SUMMARY: compatible with the OS upgrade ✓\n")
	} else {
		fmt.Fprintf(&sb, "SUMMARY: not compatible (%s)\n", strings.Join(failedChecks(v), ", "))
	}
	sb.WriteString(reportRule)

	return sb.String()
}

// formatCheck renders one check line.
func formatCheck(name string, ok bool) string {
	mark := "✗"
	if ok {
		mark = "✓"
	}
	return fmt.Sprintf("[%s] %s\n", mark, name)
}

// failedChecks names every check that contributed to a negative verdict.
func failedChecks(v *Verdict) []string {
	var parts []string
	if v.ParseFailure {
		parts = append(parts, "processor parse failure")
	}
	if !v.IsVM && !v.ParseFailure {
		if !v.ManufacturerOK {
			parts = append(parts, "manufacturer")
		}
		if !v.BrandOK {
			parts = append(parts, "brand")
		}
		if !v.ModelOK {
			parts = append(parts, "model")
		}
	}
	if !v.PlatformOK {
		if v.MemoryChecked && !v.MemoryOK {
			parts = append(parts, "platform incl. memory")
		} else {
			parts = append(parts, "platform")
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "unknown")
	}
	return parts
}
