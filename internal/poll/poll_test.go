package poll

import (
	"testing"

	"github.com/luki/vitals/internal/metric"
)

func TestCPULine(t *testing.T) {
	s := Snapshot{
		CPUTemp:  metric.Value(metric.CPUTemp, 45.231, "°C", metric.SourceThermalZone),
		CPUUsage: metric.Value(metric.CPUUsage, 12.34, "%", metric.SourceHostSensors),
	}
	if got := s.CPULine(); got != "CPU: 45.2°C, 12.3%" {
		t.Errorf("got %q", got)
	}
}

func TestCPULineUnavailableTemp(t *testing.T) {
	s := Snapshot{
		CPUTemp:  metric.Unavailable(metric.CPUTemp),
		CPUUsage: metric.Value(metric.CPUUsage, 8, "%", metric.SourceHostSensors),
	}
	if got := s.CPULine(); got != "CPU: N/A, 8%" {
		t.Errorf("got %q", got)
	}
}

func TestGPULineCombined(t *testing.T) {
	s := Snapshot{
		GPUTemp:  metric.Value(metric.GPUTemp, 62, "°C", metric.SourceNvidia),
		GPUUsage: metric.Value(metric.GPUUsage, 30, "%", metric.SourceNvidia),
	}
	if got := s.GPULine(); got != "GPU: 62°C, 30% (NVIDIA)" {
		t.Errorf("got %q", got)
	}
}

func TestGPULineTempOnly(t *testing.T) {
	s := Snapshot{
		GPUTemp:  metric.Value(metric.GPUTemp, 49, "°C", metric.SourceNouveau),
		GPUUsage: metric.Unavailable(metric.GPUUsage),
	}
	if got := s.GPULine(); got != "GPU: 49°C (Nouveau), N/A" {
		t.Errorf("got %q", got)
	}
}

func TestGPULineUnavailable(t *testing.T) {
	s := Snapshot{
		GPUTemp:  metric.Unavailable(metric.GPUTemp),
		GPUUsage: metric.Unavailable(metric.GPUUsage),
	}
	if got := s.GPULine(); got != "GPU: N/A" {
		t.Errorf("got %q", got)
	}
}

func TestRAMLine(t *testing.T) {
	s := Snapshot{
		RAM:           metric.Value(metric.RAMUsage, 19.9, "%", metric.SourceHostSensors),
		RAMUsedBytes:  3329140000,  // ≈3.1 GB
		RAMTotalBytes: 16750000000, // ≈15.6 GB
	}
	if got := s.RAMLine(); got != "RAM: 3.1 GB / 15.6 GB (19.9%)" {
		t.Errorf("got %q", got)
	}
}
