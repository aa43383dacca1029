package weather

import (
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

var base = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

func TestMatchMedianIgnoresOutsideWindow(t *testing.T) {
	start, end := base, base.Add(10*time.Minute)
	readings := []Reading{
		{Timestamp: base.Add(1 * time.Minute), TemperatureC: f(10)},
		{Timestamp: base.Add(5 * time.Minute), TemperatureC: f(20)},
		{Timestamp: base.Add(9 * time.Minute), TemperatureC: f(30)},
		{Timestamp: base.Add(3 * time.Hour), TemperatureC: f(99)},
	}
	red, ok := NewMatcher().Match(start, end, 15*time.Minute, readings)
	if !ok {
		t.Fatalf("expected a match")
	}
	if red.TemperatureC == nil || *red.TemperatureC != 20 {
		t.Fatalf("temperature median: want=20 got=%v", red.TemperatureC)
	}
	if red.SampleCount != 3 {
		t.Fatalf("sample count: want=3 got=%d", red.SampleCount)
	}
}

func TestMatchWindowIsInclusive(t *testing.T) {
	start, end := base, base.Add(10*time.Minute)
	buf := 5 * time.Minute
	readings := []Reading{
		{Timestamp: start.Add(-buf), PressureHPa: f(1000)},
		{Timestamp: end.Add(buf), PressureHPa: f(1010)},
		{Timestamp: end.Add(buf + time.Second), PressureHPa: f(500)},
	}
	red, ok := NewMatcher().Match(start, end, buf, readings)
	if !ok {
		t.Fatalf("expected a match")
	}
	if red.PressureHPa == nil || *red.PressureHPa != 1005 {
		t.Fatalf("even-count median: want=1005 got=%v", red.PressureHPa)
	}
}

func TestMatchSparseChannels(t *testing.T) {
	readings := []Reading{
		{Timestamp: base, TemperatureC: f(12), WindSpeedMps: f(3)},
		{Timestamp: base.Add(time.Minute), TemperatureC: f(14)},
	}
	red, ok := NewMatcher().Match(base, base.Add(time.Minute), 0, readings)
	if !ok {
		t.Fatalf("expected a match")
	}
	if *red.TemperatureC != 13 {
		t.Fatalf("temperature: want=13 got=%v", *red.TemperatureC)
	}
	if red.WindSpeedMps == nil || *red.WindSpeedMps != 3 {
		t.Fatalf("wind speed: want=3 got=%v", red.WindSpeedMps)
	}
	if red.HumidityPct != nil || red.WindDirectionLinear != nil {
		t.Fatalf("absent channels should stay nil")
	}
}

func TestMatchEmptyWindow(t *testing.T) {
	readings := []Reading{{Timestamp: base.Add(-2 * time.Hour), TemperatureC: f(1)}}
	red, ok := NewMatcher().Match(base, base.Add(time.Minute), 15*time.Minute, readings)
	if ok || red != nil {
		t.Fatalf("want no match, got %+v", red)
	}
}

func TestWindDirectionIsLinearMedian(t *testing.T) {
	readings := []Reading{
		{Timestamp: base, WindDirectionDeg: f(350)},
		{Timestamp: base, WindDirectionDeg: f(10)},
	}
	red, _ := NewMatcher().Match(base, base, 0, readings)
	if red.WindDirectionLinear == nil || *red.WindDirectionLinear != 180 {
		t.Fatalf("linear median across north: want=180 got=%v", red.WindDirectionLinear)
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	if m := Median(in); *m != 2 {
		t.Fatalf("median: got=%v", *m)
	}
	if in[0] != 3 || in[1] != 1 {
		t.Fatalf("input reordered: %v", in)
	}
}
