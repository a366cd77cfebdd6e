package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/osready/osready/internal/compat"
	"github.com/osready/osready/internal/cpuid"
	"github.com/osready/osready/internal/dialog"
	"github.com/osready/osready/internal/facts"
	"github.com/osready/osready/internal/logging"
	"github.com/osready/osready/internal/policy"
	"github.com/osready/osready/internal/support"
)

// defaultPolicyPath is where the check looks for a policy file when --policy
// is not given. A missing file means all defaults.
const defaultPolicyPath = "/etc/osready/osready.lua"

// checkTimeout bounds the whole run, including the single vendor page fetch.
const checkTimeout = 2 * time.Minute

// runCheck handles the `osready check` subcommand.
// Returns an exit code (0 = compatible, 1 = any failure, 2 = usage error)
// and an error for the caller to print.
func runCheck(args []string) (int, error) {
	showHelp := false
	dryRun := false
	verbose := false
	policyPath := defaultPolicyPath
	modeFlag := ""

	for _, arg := range args {
		switch {
		case arg == "--help" || arg == "-h":
			showHelp = true
		case arg == "--dry-run" || arg == "-n":
			dryRun = true
		case arg == "--verbose" || arg == "-v":
			verbose = true
		case strings.HasPrefix(arg, "--policy="):
			policyPath = strings.TrimPrefix(arg, "--policy=")
		case strings.HasPrefix(arg, "--mode="):
			modeFlag = strings.TrimPrefix(arg, "--mode=")
		default:
			return 2, fmt.Errorf("unknown option: %s\nRun 'osready check --help' for usage", arg)
		}
	}

	if showHelp {
		printCheckHelp()
		return 0, nil
	}

	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	log := logging.New(os.Stderr, level)

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	detector := facts.NewDetector()
	f, err := detector.Detect(ctx)
	if err != nil {
		return 1, fmt.Errorf("detect platform facts: %w", err)
	}
	log.Info("platform facts",
		"uefi", f.BootedUEFI,
		"secure_boot", f.SecureBoot,
		"tpm_active", f.TPMActive,
		"tpm_enabled", f.TPMEnabled,
		"tpm_v2", f.TPMIsV2,
		"memory_mb", f.MemoryMB,
		"is_vm", f.IsVM)
	log.Debug("raw processor string", "raw", f.RawProcessor)

	pol, err := policy.NewParser().Load(policyPath, f)
	if err != nil {
		return 1, fmt.Errorf("load policy: %w", err)
	}
	if modeFlag != "" {
		pol.Mode = policy.Mode(modeFlag)
		if err := pol.Validate(); err != nil {
			return 2, err
		}
	}

	client := support.NewClient(pol.URLs)

	if dryRun {
		printDryRun(f, pol, client)
		return 0, nil
	}

	engine := compat.NewEngine(client, log)
	verdict, err := engine.Check(ctx, f, pol)
	if err != nil {
		return 1, err
	}

	fmt.Print(compat.FormatReport(verdict))

	if verdict.Final {
		return 0, nil
	}

	decision, err := present(ctx, pol)
	if err != nil {
		return 1, fmt.Errorf("present verdict: %w", err)
	}
	if decision == dialog.DecisionOverridden {
		log.Warn("operator overrode a negative verdict, continuing")
		return 0, nil
	}
	return 1, nil
}

// present hands the negative outcome to the presenter selected by mode.
func present(ctx context.Context, pol *policy.Policy) (dialog.Decision, error) {
	var presenter dialog.Presenter
	switch pol.Mode {
	case policy.ModeGUIHard, policy.ModeGUISoft:
		presenter = &dialog.ConsolePresenter{Out: os.Stderr, In: os.Stdin}
	default:
		presenter = dialog.Noop()
	}

	d := pol.Dialog
	return presenter.Show(ctx, dialog.Prompt{
		Organization:  d.Organization,
		Package:       d.Package,
		Title:         d.Title,
		Message:       d.Message,
		ErrorCode:     d.ErrorCode,
		Timeout:       time.Duration(d.TimeoutSec) * time.Second,
		Reboot:        d.Reboot,
		Step:          d.Step,
		AllowOverride: pol.Mode == policy.ModeGUISoft,
	})
}

// printDryRun shows what the check would act on without fetching anything.
func printDryRun(f *facts.Facts, pol *policy.Policy, client *support.Client) {
	fmt.Println("Readiness check (dry-run mode)")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()
	fmt.Printf("Mode:            %s\n", pol.Mode)
	fmt.Printf("Virtual machine: %v\n", f.IsVM)
	fmt.Printf("Memory:          %d MB (threshold %d MB, scope %s)\n",
		f.MemoryMB, pol.MemoryMinMB, pol.MemoryCheck)
	fmt.Printf("Firmware:        uefi=%v secure_boot=%v tpm=%v/%v v2=%v\n",
		f.BootedUEFI, f.SecureBoot, f.TPMActive, f.TPMEnabled, f.TPMIsV2)

	if f.IsVM {
		fmt.Println()
		fmt.Println("VM branch: CPU checks and vendor fetch would be skipped.")
		return
	}

	fmt.Printf("Raw processor:   %q\n", f.RawProcessor)
	id, err := cpuid.Normalize(f.RawProcessor)
	if err != nil {
		fmt.Printf("Identity:        unresolved (%v)\n", err)
		return
	}
	fmt.Printf("Identity:        %s / %s / %s\n", id.Manufacturer, id.Brand, id.Model)
	if url, ok := client.PageURL(id.Manufacturer); ok {
		fmt.Printf("Vendor page:     %s\n", url)
	} else {
		fmt.Printf("Vendor page:     none for %s (run would abort)\n", id.Manufacturer)
	}
}

// printCheckHelp prints help for the check command
func printCheckHelp() {
	fmt.Println("Usage: osready check [options]")
	fmt.Println()
	fmt.Println("Check whether this machine qualifies for the OS upgrade.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -n, --dry-run    Show facts and identity without fetching")
	fmt.Println("  -v, --verbose    Enable debug logging")
	fmt.Println("  --mode=MODE      Presentation mode: silent, gui-hard, gui-soft")
	fmt.Println("  --policy=PATH    Policy file (default " + defaultPolicyPath + ")")
	fmt.Println()
	fmt.Println("Modes:")
	fmt.Println("  silent      Exit code only, no dialog")
	fmt.Println("  gui-hard    Blocking dialog, no override")
	fmt.Println("  gui-soft    Blocking dialog with continue-anyway option")
	fmt.Println()
	fmt.Println("Exit codes:")
	fmt.Println("  0  Fully compatible (or operator override in gui-soft mode)")
	fmt.Println("  1  Not compatible, or the check itself failed")
	fmt.Println("  2  Usage error")
	fmt.Println()
}
