package probe

import (
	"context"
	"fmt"

	"github.com/luki/vitals/internal/metric"
)

// RAMInfo is the memory reading plus the totals the display derives its
// "used GB / total GB" line from.
type RAMInfo struct {
	Reading    metric.Reading
	UsedBytes  uint64
	TotalBytes uint64
}

// RAM queries memory usage directly from the OS. This is the one probe
// with no fallback and no graceful degradation: if the memory query
// fails, the host introspection layer itself is broken and the error
// propagates as fatal.
func (r *Resolver) RAM(ctx context.Context) (RAMInfo, error) {
	vm, err := r.virtualMemory(ctx)
	if err != nil {
		return RAMInfo{}, fmt.Errorf("query virtual memory: %w", err)
	}
	return RAMInfo{
		Reading:    metric.Value(metric.RAMUsage, vm.UsedPercent, "%", metric.SourceHostSensors),
		UsedBytes:  vm.Used,
		TotalBytes: vm.Total,
	}, nil
}
