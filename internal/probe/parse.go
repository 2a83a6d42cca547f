package probe

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError means a tool ran successfully but its output was not in the
// shape the probe expected.
type ParseError struct {
	What  string
	Input string
}

func (e *ParseError) Error() string {
	in := e.Input
	if len(in) > 80 {
		in = in[:80] + "…"
	}
	return fmt.Sprintf("parse %s: unrecognized output %q", e.What, in)
}

// parseThermalZone parses a sysfs thermal_zone temp file: a single
// integer in millidegrees Celsius.
func parseThermalZone(raw string) (float64, error) {
	milli, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ParseError{What: "thermal zone", Input: raw}
	}
	return float64(milli) / 1000.0, nil
}

// parseNvidiaCSV parses one line of `nvidia-smi --format=csv,noheader`
// output into exactly want numeric fields. Unit adornments like a
// trailing "%" are tolerated per field.
func parseNvidiaCSV(raw string, want int) ([]float64, error) {
	line := strings.TrimSpace(raw)
	parts := strings.Split(line, ",")
	if len(parts) != want {
		return nil, &ParseError{What: "nvidia-smi", Input: raw}
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := parseAdornedFloat(p)
		if err != nil {
			return nil, &ParseError{What: "nvidia-smi", Input: raw}
		}
		vals[i] = v
	}
	return vals, nil
}

// parseRadeontop scans radeontop's line-oriented output for the GPU
// temperature and load labels. Each is independently optional: a missing
// or unparseable line leaves its field absent rather than failing the
// other one.
func parseRadeontop(raw string) gpuSample {
	var s gpuSample
	for _, line := range strings.Split(raw, "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		label, rest := line[:idx], line[idx+1:]
		switch {
		case strings.Contains(label, "GPU Temp"):
			if v, err := parseAdornedFloat(rest); err == nil {
				s.Temp, s.HasTemp = v, true
			}
		case strings.Contains(label, "GPU Load"):
			if v, err := parseAdornedFloat(rest); err == nil {
				s.Usage, s.HasUsage = v, true
			}
		}
	}
	return s
}

// parseSensorsPackageTemp scans `sensors` text output for the package
// temperature line and extracts the first token after the colon.
func parseSensorsPackageTemp(raw string) (float64, error) {
	for _, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, "Package id 0") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		fields := strings.Fields(line[idx+1:])
		if len(fields) == 0 {
			continue
		}
		if v, err := parseAdornedFloat(fields[0]); err == nil {
			return v, nil
		}
	}
	return 0, &ParseError{What: "sensors", Input: raw}
}

// parseNouveauTemp parses `nvidia-settings -q GPUCoreTemp` style output:
// a colon-delimited line whose last field is the temperature.
func parseNouveauTemp(raw string) (float64, error) {
	line := strings.TrimSpace(raw)
	idx := strings.LastIndex(line, ":")
	if idx < 0 {
		return 0, &ParseError{What: "nvidia-settings", Input: raw}
	}
	v, err := parseAdornedFloat(line[idx+1:])
	if err != nil {
		return 0, &ParseError{What: "nvidia-settings", Input: raw}
	}
	return v, nil
}

// parseAdornedFloat parses a numeric token stripped of the unit suffixes
// and sign prefix the vendor tools decorate values with ("+48.0°C",
// "30 %", "45C").
func parseAdornedFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, suffix := range []string{"°C", "C", "%"} {
		s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
	}
	s = strings.TrimPrefix(s, "+")
	return strconv.ParseFloat(s, 64)
}
