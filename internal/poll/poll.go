// Package poll drives one collection tick: it resolves every metric
// through the fallback resolver and assembles the results into an
// immutable snapshot for the presentation shell. A failure in one
// metric never blocks the others; only a RAM query failure is fatal.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/luki/vitals/internal/metric"
	"github.com/luki/vitals/internal/probe"
)

const (
	// Interval is the polling period.
	Interval = 1 * time.Second

	// TickBudget is the hard deadline for one collection pass. It has to
	// cover the CPU sample window plus a worst-case tool timeout or two,
	// so a stalled vendor tool delays at most one tick.
	TickBudget = 15 * time.Second
)

// Snapshot is the latest reading for every metric, rebuilt wholesale
// each tick and handed to the shell as one value.
type Snapshot struct {
	CPUTemp  metric.Reading
	CPUUsage metric.Reading
	GPUTemp  metric.Reading
	GPUUsage metric.Reading
	RAM      metric.Reading

	RAMUsedBytes  uint64
	RAMTotalBytes uint64

	Time time.Time
}

// Collector runs ticks against a resolver.
type Collector struct {
	Resolver *probe.Resolver
}

// Collect performs one tick. The returned error is non-nil only for the
// fatal RAM path; every other metric degrades to its N/A reading.
func (c *Collector) Collect(ctx context.Context) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, TickBudget)
	defer cancel()

	var s Snapshot
	s.CPUTemp = c.Resolver.CPUTemp(ctx)
	s.CPUUsage = c.Resolver.CPUUsage(ctx)
	s.GPUTemp, s.GPUUsage = c.Resolver.GPU(ctx)

	ram, err := c.Resolver.RAM(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	s.RAM = ram.Reading
	s.RAMUsedBytes = ram.UsedBytes
	s.RAMTotalBytes = ram.TotalBytes

	s.Time = time.Now()
	return s, nil
}

// CPULine renders the CPU display string, e.g. "CPU: 45.2°C, 12.3%".
func (s Snapshot) CPULine() string {
	return fmt.Sprintf("CPU: %s, %s", s.CPUTemp, s.CPUUsage)
}

// GPULine renders the GPU display string with vendor provenance, e.g.
// "GPU: 62°C, 30% (NVIDIA)". When only the temperature resolved, the
// provenance moves onto it; when nothing resolved, the line is N/A.
func (s Snapshot) GPULine() string {
	switch {
	case s.GPUUsage.Valid:
		return fmt.Sprintf("GPU: %s, %s", s.GPUTemp, s.GPUUsage.Annotated())
	case s.GPUTemp.Valid:
		return fmt.Sprintf("GPU: %s, N/A", s.GPUTemp.Annotated())
	default:
		return "GPU: N/A"
	}
}

// RAMLine renders the RAM display string, e.g.
// "RAM: 3.1 GB / 15.6 GB (19.9%)".
func (s Snapshot) RAMLine() string {
	if !s.RAM.Valid {
		return "RAM: N/A"
	}
	return fmt.Sprintf("RAM: %.1f GB / %.1f GB (%.1f%%)",
		gb(s.RAMUsedBytes), gb(s.RAMTotalBytes), s.RAM.Value)
}

func gb(b uint64) float64 { return float64(b) / (1 << 30) }
