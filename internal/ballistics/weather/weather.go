// Package weather reduces a weather time series to per-channel medians over a firing window.
package weather

import (
	"sort"
	"time"
)

// Reading is one weather observation in canonical units. Any channel may be absent.
type Reading struct {
	Timestamp        time.Time
	TemperatureC     *float64
	HumidityPct      *float64
	PressureHPa      *float64
	WindSpeedMps     *float64
	WindGustMps      *float64
	WindDirectionDeg *float64
}

// Reduced holds the median of every channel that had at least one value in the window.
type Reduced struct {
	TemperatureC *float64
	HumidityPct  *float64
	PressureHPa  *float64
	WindSpeedMps *float64
	WindGustMps  *float64
	// WindDirectionLinear is a plain median over raw degrees. Readings that straddle north
	// (e.g. 350 and 10) produce a southerly value; callers that care must not rely on it.
	WindDirectionLinear *float64
	SampleCount         int
}

// Matcher selects readings inside a buffered window and reduces them.
type Matcher interface {
	Match(start, end time.Time, buffer time.Duration, readings []Reading) (*Reduced, bool)
}

type MedianMatcher struct{}

func NewMatcher() MedianMatcher { return MedianMatcher{} }

// Match keeps readings with start-buffer <= ts <= end+buffer. It reports false when none qualify.
func (MedianMatcher) Match(start, end time.Time, buffer time.Duration, readings []Reading) (*Reduced, bool) {
	lo := start.Add(-buffer)
	hi := end.Add(buffer)

	var (
		temp, hum, pres, ws, wg, wd []float64
		count                       int
	)
	for _, r := range readings {
		if r.Timestamp.Before(lo) || r.Timestamp.After(hi) {
			continue
		}
		count++
		temp = appendPresent(temp, r.TemperatureC)
		hum = appendPresent(hum, r.HumidityPct)
		pres = appendPresent(pres, r.PressureHPa)
		ws = appendPresent(ws, r.WindSpeedMps)
		wg = appendPresent(wg, r.WindGustMps)
		wd = appendPresent(wd, r.WindDirectionDeg)
	}
	if count == 0 {
		return nil, false
	}
	return &Reduced{
		TemperatureC:        Median(temp),
		HumidityPct:         Median(hum),
		PressureHPa:         Median(pres),
		WindSpeedMps:        Median(ws),
		WindGustMps:         Median(wg),
		WindDirectionLinear: Median(wd),
		SampleCount:         count,
	}, true
}

// Median returns nil for an empty slice. Even counts average the two middle values.
// The input is not modified.
func Median(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	s := make([]float64, len(vals))
	copy(s, vals)
	sort.Float64s(s)
	mid := len(s) / 2
	var m float64
	if len(s)%2 == 1 {
		m = s[mid]
	} else {
		m = (s[mid-1] + s[mid]) / 2
	}
	return &m
}

func appendPresent(dst []float64, v *float64) []float64 {
	if v == nil {
		return dst
	}
	return append(dst, *v)
}
