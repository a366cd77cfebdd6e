package facts

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// RealDetector implements Detector against the running host.
type RealDetector struct {
	// SysfsRoot is the root of the sysfs mount used for firmware probing.
	// Defaults to "/sys"; tests point it at a fixture tree.
	SysfsRoot string
}

// NewDetector creates a detector probing the running host.
func NewDetector() *RealDetector {
	return &RealDetector{SysfsRoot: "/sys"}
}

// Detect collects the platform facts for this run.
//
// The VM flag comes from gopsutil's virtualization detection (role "guest"),
// memory from the total physical memory, and the raw processor string from
// the first CPU package's model name. Firmware facts are probed from sysfs.
// Probe failures leave the corresponding fact at its zero value; an empty
// RawProcessor later surfaces as a parse failure on the physical branch.
func (d *RealDetector) Detect(ctx context.Context) (*Facts, error) {
	f := &Facts{}

	if system, role, err := host.VirtualizationWithContext(ctx); err == nil {
		f.IsVM = system != "" && role == "guest"
	} else if ctx.Err() != nil {
		return nil, fmt.Errorf("fact detection cancelled: %w", ctx.Err())
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		f.MemoryMB = vm.Total / (1024 * 1024)
	} else if ctx.Err() != nil {
		return nil, fmt.Errorf("fact detection cancelled: %w", ctx.Err())
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		f.RawProcessor = infos[0].ModelName
	} else if ctx.Err() != nil {
		return nil, fmt.Errorf("fact detection cancelled: %w", ctx.Err())
	}

	root := d.SysfsRoot
	if root == "" {
		root = "/sys"
	}
	probeFirmware(root, f)

	return f, nil
}
