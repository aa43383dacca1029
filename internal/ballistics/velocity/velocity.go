// Package velocity computes shot-string statistics from canonical (m/s) velocities.
package velocity

import (
	"fmt"
	"math"
)

// Stats is the summary of one shot string. All velocities are m/s.
type Stats struct {
	Count         int      `json:"count"`
	Min           float64  `json:"min"`
	Max           float64  `json:"max"`
	Mean          float64  `json:"mean"`
	StdDev        float64  `json:"std_dev"`
	ExtremeSpread float64  `json:"extreme_spread"`
	CV            *float64 `json:"cv_percent,omitempty"`
}

// InsufficientDataError is returned when there is nothing to summarize.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient velocity data: have %d, need at least %d", e.Have, e.Need)
}

// Calculator summarizes a shot string.
type Calculator interface {
	Compute(velocities []float64) (Stats, error)
}

// SampleCalculator uses the sample (n-1) standard deviation, accumulated with Welford's method.
type SampleCalculator struct{}

func NewCalculator() SampleCalculator { return SampleCalculator{} }

func (SampleCalculator) Compute(velocities []float64) (Stats, error) {
	if len(velocities) == 0 {
		return Stats{}, &InsufficientDataError{Have: 0, Need: 1}
	}

	var (
		n    int
		mean float64
		m2   float64
		lo   = math.Inf(1)
		hi   = math.Inf(-1)
	)
	for _, v := range velocities {
		n++
		delta := v - mean
		mean += delta / float64(n)
		m2 += delta * (v - mean)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var sd float64
	if n > 1 {
		sd = math.Sqrt(m2 / float64(n-1))
	}

	out := Stats{
		Count:         n,
		Min:           lo,
		Max:           hi,
		Mean:          mean,
		StdDev:        sd,
		ExtremeSpread: hi - lo,
	}
	if mean != 0 {
		cv := sd / mean * 100
		out.CV = &cv
	}
	return out, nil
}
