// Package metric defines the reading model shared by the probes, the
// resolver, and the presentation shell: which metric was measured, the
// value, and the provenance of the source that produced it.
package metric

import (
	"math"
	"strconv"
)

// Metric identifies what was measured.
type Metric int

const (
	CPUTemp Metric = iota
	CPUUsage
	GPUTemp
	GPUUsage
	RAMUsage
)

func (m Metric) String() string {
	switch m {
	case CPUTemp:
		return "cpu.temp"
	case CPUUsage:
		return "cpu.usage"
	case GPUTemp:
		return "gpu.temp"
	case GPUUsage:
		return "gpu.usage"
	case RAMUsage:
		return "ram.usage"
	}
	return "unknown"
}

// Source records which probe produced a reading.
type Source int

const (
	SourceNone Source = iota
	SourceNvidia
	SourceAMDRadeontop
	SourceIntelSensors
	SourceNouveau
	SourceThermalZone
	SourceHostSensors // direct gopsutil reads: hwmon CPU temp, CPU %, RAM
)

func (s Source) String() string {
	switch s {
	case SourceNvidia:
		return "NVIDIA"
	case SourceAMDRadeontop:
		return "AMD"
	case SourceIntelSensors:
		return "Intel"
	case SourceNouveau:
		return "Nouveau"
	case SourceThermalZone:
		return "thermal-zone"
	case SourceHostSensors:
		return "hwmon"
	}
	return "none"
}

// Reading is one measurement from one tick. Valid is false exactly when
// Source is SourceNone; readings are built via Value or Unavailable and
// never mutated.
type Reading struct {
	Metric Metric
	Value  float64
	Valid  bool
	Unit   string
	Source Source
}

// Value constructs a successful reading.
func Value(m Metric, v float64, unit string, src Source) Reading {
	return Reading{Metric: m, Value: v, Valid: true, Unit: unit, Source: src}
}

// Unavailable constructs the N/A sentinel for a metric.
func Unavailable(m Metric) Reading {
	return Reading{Metric: m, Source: SourceNone}
}

// String renders the reading as value+unit, or "N/A" when unavailable.
// Values are rounded to one decimal with a trailing ".0" trimmed, so
// 45.231 renders as "45.2" and 62 as "62".
func (r Reading) String() string {
	if !r.Valid {
		return "N/A"
	}
	return FormatValue(r.Value) + r.Unit
}

// Annotated renders the reading with its provenance, e.g. "30% (NVIDIA)".
func (r Reading) Annotated() string {
	if !r.Valid {
		return "N/A"
	}
	return r.String() + " (" + r.Source.String() + ")"
}

// FormatValue formats a measurement rounded to one decimal place,
// dropping the fraction when it is zero.
func FormatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
