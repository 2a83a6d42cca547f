package metric

import "testing"

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{45.231, "45.2"},
		{62, "62"},
		{30, "30"},
		{0, "0"},
		{99.95, "100"},
		{19.94, "19.9"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadingString(t *testing.T) {
	r := Value(GPUTemp, 62, "°C", SourceNvidia)
	if got := r.String(); got != "62°C" {
		t.Errorf("String: got %q, want 62°C", got)
	}
	if got := r.Annotated(); got != "62°C (NVIDIA)" {
		t.Errorf("Annotated: got %q, want 62°C (NVIDIA)", got)
	}

	na := Unavailable(GPUUsage)
	if got := na.String(); got != "N/A" {
		t.Errorf("unavailable String: got %q, want N/A", got)
	}
	if got := na.Annotated(); got != "N/A" {
		t.Errorf("unavailable Annotated: got %q, want N/A", got)
	}
}

func TestValueSourcePairing(t *testing.T) {
	if r := Value(CPUTemp, 45.2, "°C", SourceThermalZone); !r.Valid || r.Source == SourceNone {
		t.Errorf("Value must produce valid reading with a source, got %+v", r)
	}
	if r := Unavailable(CPUTemp); r.Valid || r.Source != SourceNone {
		t.Errorf("Unavailable must pair invalid with SourceNone, got %+v", r)
	}
}
