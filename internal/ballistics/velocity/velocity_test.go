package velocity

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestComputeHandFixture(t *testing.T) {
	st, err := NewCalculator().Compute([]float64{790, 792, 791})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if st.Count != 3 {
		t.Fatalf("count: want=3 got=%d", st.Count)
	}
	if !approx(st.Mean, 791) {
		t.Fatalf("mean: want=791 got=%f", st.Mean)
	}
	if !approx(st.StdDev, 1) {
		t.Fatalf("stddev: want=1 got=%f", st.StdDev)
	}
	if st.Min != 790 || st.Max != 792 || !approx(st.ExtremeSpread, 2) {
		t.Fatalf("min/max/es: got=%f/%f/%f", st.Min, st.Max, st.ExtremeSpread)
	}
	if st.CV == nil || !approx(*st.CV, 100.0/791.0) {
		t.Fatalf("cv: got=%v", st.CV)
	}
}

func TestComputeLargerFixture(t *testing.T) {
	// mean 800, deviations -10,-5,0,5,10 -> sum sq 250, /4 = 62.5
	st, err := NewCalculator().Compute([]float64{790, 795, 800, 805, 810})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !approx(st.Mean, 800) || !approx(st.StdDev, math.Sqrt(62.5)) {
		t.Fatalf("mean/sd: got=%f/%f", st.Mean, st.StdDev)
	}
	if !approx(st.ExtremeSpread, 20) {
		t.Fatalf("es: got=%f", st.ExtremeSpread)
	}
}

func TestComputeSingleShot(t *testing.T) {
	st, err := NewCalculator().Compute([]float64{812.5})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if st.StdDev != 0 || st.ExtremeSpread != 0 || st.Mean != 812.5 {
		t.Fatalf("single shot: %+v", st)
	}
	if st.CV == nil || *st.CV != 0 {
		t.Fatalf("cv: want=0 got=%v", st.CV)
	}
}

func TestComputeEmpty(t *testing.T) {
	_, err := NewCalculator().Compute(nil)
	var ide *InsufficientDataError
	if !errors.As(err, &ide) {
		t.Fatalf("want InsufficientDataError, got %v", err)
	}
	if ide.Have != 0 {
		t.Fatalf("have: got=%d", ide.Have)
	}
}

func TestComputeZeroMeanHasNoCV(t *testing.T) {
	st, err := NewCalculator().Compute([]float64{0, 0})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if st.CV != nil {
		t.Fatalf("cv should be nil when mean is 0, got %v", *st.CV)
	}
}
