package probe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsGPUChip(t *testing.T) {
	tests := []struct {
		chip string
		want bool
	}{
		{"amdgpu-pci-0600", true},
		{"nouveau-pci-0100", true},
		{"nvidia-gpu-0", true},
		{"i915", true},
		{"coretemp-isa-0000", false},
		{"nvme-pci-0300", false},
		{"acpitz", false},
	}
	for _, tt := range tests {
		if got := isGPUChip(tt.chip); got != tt.want {
			t.Errorf("isGPUChip(%q) = %v, want %v", tt.chip, got, tt.want)
		}
	}
}

func TestHasDRMDevice(t *testing.T) {
	dir := t.TempDir()
	glob := filepath.Join(dir, "card*")

	if hasDRMDevice(glob) {
		t.Error("empty dir should report no device")
	}

	if err := os.WriteFile(filepath.Join(dir, "card0"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if !hasDRMDevice(glob) {
		t.Error("expected device to be detected")
	}
}
