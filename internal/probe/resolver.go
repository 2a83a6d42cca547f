// Package probe turns external data sources into metric readings. Each
// source probe wraps one tool invocation plus its parser; the Resolver
// walks the per-metric probe lists in priority order and converges on
// the best available reading, tagged with its provenance. Every probe
// failure is swallowed here: the resolver never fails, it answers N/A.
package probe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/luki/vitals/internal/metric"
	"github.com/luki/vitals/internal/repair"
	"github.com/luki/vitals/internal/runner"
)

const (
	// DefaultThermalZonePath is the sysfs fallback for CPU temperature.
	DefaultThermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

	// DefaultSampleWindow is how long the CPU utilization sample blocks.
	DefaultSampleWindow = 1 * time.Second

	drmGlob = "/sys/class/drm/card*"
)

var errNoCoreSensor = errors.New("no processor core entry in sensor enumeration")

// Resolver resolves each metric via its probe chain. Stateless across
// ticks except for the one-time GPU tooling advisory.
type Resolver struct {
	Run             runner.Runner
	Repair          repair.Strategy
	ThermalZonePath string
	SampleWindow    time.Duration

	log *slog.Logger

	// OS introspection entry points, swappable in tests.
	sensorTemps   func(ctx context.Context) ([]host.TemperatureStat, error)
	cpuPercent    func(ctx context.Context, interval time.Duration) ([]float64, error)
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	gpuPresent    func(ctx context.Context) bool

	advisedNoGPUTooling bool
}

// New builds a resolver with the production probe wiring. A nil repair
// strategy disables self-healing.
func New(run runner.Runner, rep repair.Strategy, log *slog.Logger) *Resolver {
	if rep == nil {
		rep = repair.Disabled{}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Resolver{
		Run:             run,
		Repair:          rep,
		ThermalZonePath: DefaultThermalZonePath,
		SampleWindow:    DefaultSampleWindow,
		log:             log,
		sensorTemps:     host.SensorsTemperaturesWithContext,
		virtualMemory:   mem.VirtualMemoryWithContext,
	}
	r.cpuPercent = func(ctx context.Context, interval time.Duration) ([]float64, error) {
		return cpu.PercentWithContext(ctx, interval, false)
	}
	r.gpuPresent = r.detectGPU
	return r
}

// GPU resolves the combined temperature+utilization metric. Vendor
// probes are tried in order and must yield both values to win; a probe
// that yields only one is treated as unavailable and the chain moves on.
// After the vendors, a temperature-only Nouveau fallback. If everything
// fails, one repair attempt and one more pass over the whole chain, then
// N/A for this tick. The repair attempt re-arms on every call.
func (r *Resolver) GPU(ctx context.Context) (temp, usage metric.Reading) {
	for attempt := 0; ; attempt++ {
		if t, u, ok := r.gpuChainOnce(ctx); ok {
			return t, u
		}
		if attempt > 0 {
			break
		}
		r.Repair.Attempt(ctx)
	}

	if r.gpuPresent(ctx) && !r.advisedNoGPUTooling {
		r.advisedNoGPUTooling = true
		r.log.Warn("GPU detected but no usable query tooling found; install vendor utilities manually")
	}
	return metric.Unavailable(metric.GPUTemp), metric.Unavailable(metric.GPUUsage)
}

// gpuChainOnce walks the probe chain a single time.
func (r *Resolver) gpuChainOnce(ctx context.Context) (temp, usage metric.Reading, ok bool) {
	for _, p := range vendorProbes {
		sample, err := p.probe(ctx, r.Run)
		if err != nil {
			r.log.Debug("gpu probe unavailable", "source", p.source, "reason", err)
			continue
		}
		if !sample.complete() {
			r.log.Debug("gpu probe incomplete", "source", p.source,
				"has_temp", sample.HasTemp, "has_usage", sample.HasUsage)
			continue
		}
		return metric.Value(metric.GPUTemp, sample.Temp, "°C", p.source),
			metric.Value(metric.GPUUsage, sample.Usage, "%", p.source),
			true
	}

	sample, err := nouveauProbe.probe(ctx, r.Run)
	if err != nil {
		r.log.Debug("gpu probe unavailable", "source", nouveauProbe.source, "reason", err)
		return metric.Reading{}, metric.Reading{}, false
	}
	if !sample.HasTemp {
		return metric.Reading{}, metric.Reading{}, false
	}
	return metric.Value(metric.GPUTemp, sample.Temp, "°C", nouveauProbe.source),
		metric.Unavailable(metric.GPUUsage),
		true
}

// detectGPU checks for any evidence a GPU is installed, independent of
// whether its query tooling works: a DRM device node or a GPU-class
// hwmon chip.
func (r *Resolver) detectGPU(ctx context.Context) bool {
	if hasDRMDevice(drmGlob) {
		return true
	}
	temps, err := r.sensorTemps(ctx)
	if err != nil {
		return false
	}
	for _, t := range temps {
		if isGPUChip(t.SensorKey) {
			return true
		}
	}
	return false
}
