package chart

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/vitals/internal/history"
)

func TestSparkline(t *testing.T) {
	var pts []history.Point
	for _, v := range []float64{30, 35, 40, 50, 60, 70, 80, 90, 100} {
		pts = append(pts, history.Point{Value: v})
	}
	result := RenderSparklinePoints(pts, 20, 20, 110, Scale{High: 80, Crit: 100})
	if len(result) == 0 {
		t.Error("sparkline should not be empty")
	}
	t.Logf("Sparkline: %s", result)
}

func TestSparklineMinuteTicks(t *testing.T) {
	base := time.Date(2026, 8, 21, 14, 0, 50, 0, time.Local)
	var pts []history.Point
	for i := 0; i < 20; i++ {
		pts = append(pts, history.Point{
			Value: float64(40 + i%5),
			Time:  base.Add(time.Duration(i) * time.Second),
		})
	}

	result := RenderSparklinePoints(pts, 20, 30, 55, TempScale)
	if len(result) == 0 {
		t.Error("sparkline should not be empty")
	}
	if !strings.Contains(result, "│") {
		t.Error("expected minute tick mark in sparkline")
	}
	t.Logf("Sparkline with ticks: %s", result)
}

func TestSparklineEmpty(t *testing.T) {
	result := RenderSparklinePoints(nil, 10, 0, 100, PercentScale)
	if result == "" {
		t.Error("empty trace should render a placeholder baseline")
	}
}

func TestScaleColorBands(t *testing.T) {
	s := Scale{High: 80, Crit: 100}
	tests := []struct {
		v    float64
		want lipgloss.Color
	}{
		{40, lipgloss.Color("78")},
		{70, lipgloss.Color("220")}, // within 85% of high
		{85, lipgloss.Color("208")},
		{105, lipgloss.Color("196")},
	}
	for _, tt := range tests {
		if got := s.Color(tt.v); got != tt.want {
			t.Errorf("Color(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestScaleDisabledBands(t *testing.T) {
	s := Scale{}
	if got := s.Color(500); got != lipgloss.Color("78") {
		t.Errorf("disabled scale must stay green, got %v", got)
	}
}
