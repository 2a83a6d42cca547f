package probe

import (
	"path/filepath"
	"strings"
)

// gpuChipPrefixes are hwmon chip name prefixes that identify a GPU. Used
// only for the tooling advisory: a chip matching here means a GPU exists
// even when no query tool produced a reading.
var gpuChipPrefixes = []string{
	"amdgpu",
	"radeon",
	"nouveau",
	"nvidia",
	"intel_gpu",
	"i915",
}

// isGPUChip reports whether a sensor chip/key name belongs to a GPU.
func isGPUChip(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range gpuChipPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// hasDRMDevice reports whether the kernel exposes any DRM card node,
// the broadest hint that a GPU is installed.
func hasDRMDevice(glob string) bool {
	matches, err := filepath.Glob(glob)
	return err == nil && len(matches) > 0
}
