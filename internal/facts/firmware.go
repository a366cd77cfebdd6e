package facts

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// secureBootVar is the efivarfs file holding the Secure Boot state. The GUID
// is the fixed EFI global variable namespace; the variable payload is four
// bytes of attributes followed by the state byte.
const secureBootVar = "firmware/efi/efivars/SecureBoot-8be4df61-93ca-11d2-aa0d-00e098032b8c"

// probeFirmware fills the firmware facts from a sysfs tree. Each probe is
// independent; a failed read leaves its fact false.
func probeFirmware(root string, f *Facts) {
	f.BootedUEFI = dirExists(filepath.Join(root, "firmware", "efi"))
	f.SecureBoot = readSecureBoot(filepath.Join(root, secureBootVar))

	tpmDir := filepath.Join(root, "class", "tpm", "tpm0")
	if dirExists(tpmDir) {
		// A registered tpm0 device means the TPM is present and enabled by
		// firmware; an inactive or disabled TPM is not exposed here.
		f.TPMActive = true
		f.TPMEnabled = true
		f.TPMIsV2 = readTPMMajorVersion(tpmDir) == "2"
	}
}

// readSecureBoot reports whether the Secure Boot EFI variable exists and its
// state byte is 1.
func readSecureBoot(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return false
	}
	return data[len(data)-1] == 1
}

// readTPMMajorVersion returns the major version of the TPM device, or "" if
// it cannot be determined. Kernels expose it as tpm_version_major; older
// TPM 1.2 devices carry a caps file instead, which reports no major version
// here and therefore counts as not-2.0.
func readTPMMajorVersion(tpmDir string) string {
	data, err := os.ReadFile(filepath.Join(tpmDir, "tpm_version_major"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bytes.TrimRight(data, "\x00")))
}

// dirExists reports whether path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
