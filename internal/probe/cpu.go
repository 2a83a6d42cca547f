package probe

import (
	"context"
	"os"
	"strings"

	"github.com/luki/vitals/internal/metric"
)

// cpuTempFromSensors picks a CPU core temperature out of the host's
// labeled sensor enumeration. Entries whose key names a processor core
// are preferred; anything else is ignored so a GPU or drive sensor can
// never masquerade as the CPU.
func (r *Resolver) cpuTempFromSensors(ctx context.Context) (metric.Reading, error) {
	temps, err := r.sensorTemps(ctx)
	if err != nil {
		return metric.Reading{}, err
	}
	for _, t := range temps {
		key := strings.ToLower(t.SensorKey)
		if !strings.Contains(key, "core") {
			continue
		}
		// Guard against dead sensors reporting zero or junk.
		if t.Temperature <= 0 || t.Temperature > 200 {
			continue
		}
		return metric.Value(metric.CPUTemp, t.Temperature, "°C", metric.SourceHostSensors), nil
	}
	return metric.Reading{}, errNoCoreSensor
}

// cpuTempFromThermalZone is the fallback: a direct read of the sysfs
// thermal zone file, millidegrees Celsius.
func (r *Resolver) cpuTempFromThermalZone() (metric.Reading, error) {
	raw, err := os.ReadFile(r.ThermalZonePath)
	if err != nil {
		return metric.Reading{}, err
	}
	temp, err := parseThermalZone(string(raw))
	if err != nil {
		return metric.Reading{}, err
	}
	return metric.Value(metric.CPUTemp, temp, "°C", metric.SourceThermalZone), nil
}

// CPUTemp resolves CPU temperature: labeled sensor enumeration first,
// thermal zone file second, N/A when both are out.
func (r *Resolver) CPUTemp(ctx context.Context) metric.Reading {
	reading, err := r.cpuTempFromSensors(ctx)
	if err == nil {
		return reading
	}
	r.log.Debug("cpu temp probe unavailable", "source", metric.SourceHostSensors, "reason", err)

	reading, err = r.cpuTempFromThermalZone()
	if err == nil {
		return reading
	}
	r.log.Debug("cpu temp probe unavailable", "source", metric.SourceThermalZone, "reason", err)

	return metric.Unavailable(metric.CPUTemp)
}

// CPUUsage samples CPU utilization over a fixed window. The blocking
// wait is deliberate: an instantaneous read has nothing to measure
// against. Single source, no chain.
func (r *Resolver) CPUUsage(ctx context.Context) metric.Reading {
	percents, err := r.cpuPercent(ctx, r.SampleWindow)
	if err != nil || len(percents) == 0 {
		r.log.Debug("cpu usage probe unavailable", "reason", err)
		return metric.Unavailable(metric.CPUUsage)
	}
	return metric.Value(metric.CPUUsage, percents[0], "%", metric.SourceHostSensors)
}
