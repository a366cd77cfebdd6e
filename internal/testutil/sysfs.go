// Package testutil provides utilities for testing osready in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SysfsOptions describes the firmware posture a fake sysfs tree should
// present.
type SysfsOptions struct {
	UEFI            bool
	SecureBoot      bool // ignored unless UEFI is set
	TPM             bool
	TPMMajorVersion string // written to tpm_version_major when TPM is set; empty omits the file
}

// FakeSysfs builds a throwaway sysfs tree under t.TempDir() matching opts and
// returns its root. Cleanup is handled by the testing framework.
//
// Detection code must never touch the real /sys during tests; pointing a
// detector's SysfsRoot at this tree keeps firmware probing hermetic.
func FakeSysfs(t *testing.T, opts SysfsOptions) string {
	t.Helper()

	root := t.TempDir()

	if opts.UEFI {
		efivars := filepath.Join(root, "firmware", "efi", "efivars")
		mkdir(t, efivars)

		state := byte(0)
		if opts.SecureBoot {
			state = 1
		}
		// Four attribute bytes followed by the state byte, as efivarfs
		// exposes it.
		payload := []byte{0x06, 0x00, 0x00, 0x00, state}
		writeFile(t, filepath.Join(efivars, "SecureBoot-8be4df61-93ca-11d2-aa0d-00e098032b8c"), payload)
	}

	if opts.TPM {
		tpmDir := filepath.Join(root, "class", "tpm", "tpm0")
		mkdir(t, tpmDir)
		if opts.TPMMajorVersion != "" {
			writeFile(t, filepath.Join(tpmDir, "tpm_version_major"), []byte(opts.TPMMajorVersion+"\n"))
		}
	}

	return root
}

func mkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("failed to create test directory %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write test file %s: %v", path, err)
	}
}
