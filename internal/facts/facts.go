// Package facts observes the local platform facts the compatibility check
// consumes: firmware posture (UEFI, Secure Boot, TPM), installed memory,
// whether the host is a virtual machine, and the raw processor descriptive
// string from hardware inventory.
//
// VM, memory, and processor facts come from gopsutil; firmware facts are read
// from sysfs and efivarfs on Linux. Individual probe failures degrade to the
// zero value for that fact rather than failing detection, so a machine with
// an unreadable TPM node still gets a verdict (a negative one for that
// check) instead of an error.
package facts

import "context"

// Facts are the platform facts for one run. They are collected once and
// treated as immutable afterwards.
type Facts struct {
	BootedUEFI bool
	SecureBoot bool
	TPMActive  bool
	TPMEnabled bool
	TPMIsV2    bool
	MemoryMB   uint64
	IsVM       bool

	// RawProcessor is the processor descriptive string as reported by
	// hardware inventory, e.g. "Intel(R) Core(TM) i7-10700K CPU @ 3.80GHz".
	// Empty if inventory could not be read.
	RawProcessor string
}

// Detector is the interface for platform fact detection.
type Detector interface {
	Detect(ctx context.Context) (*Facts, error)
}
