package probe

import (
	"context"

	"github.com/luki/vitals/internal/metric"
	"github.com/luki/vitals/internal/runner"
)

// gpuSample is the raw result of one GPU probe. Temperature and
// utilization are independently optional because some tools only expose
// one of the two.
type gpuSample struct {
	Temp     float64
	Usage    float64
	HasTemp  bool
	HasUsage bool
}

// complete reports whether the sample carries both temperature and
// utilization. Vendor probes must be complete to win the chain.
func (s gpuSample) complete() bool { return s.HasTemp && s.HasUsage }

// gpuProbe is one "try this source" unit: a vendor/driver pairing of a
// tool invocation and its parser. Probes are stateless; a non-nil error
// means the source is unavailable this tick.
type gpuProbe struct {
	source metric.Source
	probe  func(ctx context.Context, run runner.Runner) (gpuSample, error)
}

// vendorProbes is the combined temperature+utilization chain, in
// preference order. Ordering encodes vendor policy: the first complete
// sample wins even if a later probe would also succeed.
var vendorProbes = []gpuProbe{
	{metric.SourceNvidia, probeNvidia},
	{metric.SourceAMDRadeontop, probeRadeontop},
	{metric.SourceIntelSensors, probeIntelSensors},
}

// nouveauProbe is the temperature-only fallback tried after every vendor
// probe has failed.
var nouveauProbe = gpuProbe{metric.SourceNouveau, probeNouveau}

func probeNvidia(ctx context.Context, run runner.Runner) (gpuSample, error) {
	out, err := run.Run(ctx, "nvidia-smi",
		"--query-gpu=temperature.gpu,utilization.gpu",
		"--format=csv,noheader",
	)
	if err != nil {
		return gpuSample{}, err
	}
	vals, err := parseNvidiaCSV(out, 2)
	if err != nil {
		return gpuSample{}, err
	}
	return gpuSample{Temp: vals[0], HasTemp: true, Usage: vals[1], HasUsage: true}, nil
}

func probeRadeontop(ctx context.Context, run runner.Runner) (gpuSample, error) {
	out, err := run.Run(ctx, "radeontop", "-d", "1", "-l", "1")
	if err != nil {
		return gpuSample{}, err
	}
	return parseRadeontop(out), nil
}

// probeIntelSensors reads the package temperature from lm-sensors. The
// tool exposes no utilization figure, so this probe never yields a
// complete sample and the chain always continues past it.
func probeIntelSensors(ctx context.Context, run runner.Runner) (gpuSample, error) {
	out, err := run.Run(ctx, "sensors")
	if err != nil {
		return gpuSample{}, err
	}
	temp, err := parseSensorsPackageTemp(out)
	if err != nil {
		return gpuSample{}, err
	}
	return gpuSample{Temp: temp, HasTemp: true}, nil
}

func probeNouveau(ctx context.Context, run runner.Runner) (gpuSample, error) {
	out, err := run.Run(ctx, "nvidia-settings", "-q", "GPUCoreTemp")
	if err != nil {
		return gpuSample{}, err
	}
	temp, err := parseNouveauTemp(out)
	if err != nil {
		return gpuSample{}, err
	}
	return gpuSample{Temp: temp, HasTemp: true}, nil
}
