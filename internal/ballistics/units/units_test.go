package units

import (
	"math"
	"testing"
)

const eps = 1e-6

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestVelocityRoundTrip(t *testing.T) {
	if got := FPSToMPS(2600); !near(got, 792.48, eps) {
		t.Fatalf("2600 fps: want=792.48 got=%f", got)
	}
	if got := MPSToFPS(FPSToMPS(2750)); !near(got, 2750, eps) {
		t.Fatalf("round trip: got=%f", got)
	}
}

func TestTemperatureAndPressure(t *testing.T) {
	if got := FahrenheitToCelsius(59); !near(got, 15, eps) {
		t.Fatalf("59F: got=%f", got)
	}
	if got := InHgToHPa(29.92); !near(got, 1013.207, 1e-3) {
		t.Fatalf("29.92 inHg: got=%f", got)
	}
}

func TestBulletWeightKeepsBothRepresentations(t *testing.T) {
	w := NewBulletWeight(GrainsToGrams(175))
	if !near(w.Grains, 175, eps) {
		t.Fatalf("grains: want=175 got=%f", w.Grains)
	}
	if !near(w.Grams, 11.33980925, 1e-6) {
		t.Fatalf("grams: got=%f", w.Grams)
	}
	if w.GrainsBucket() != 175 {
		t.Fatalf("bucket: got=%d", w.GrainsBucket())
	}
}

func TestKineticEnergyAndPowerFactor(t *testing.T) {
	// 10 g at 800 m/s: 0.5 * 0.01 * 640000 = 3200 J
	if got := KineticEnergyJ(10, 800); !near(got, 3200, eps) {
		t.Fatalf("energy: got=%f", got)
	}
	// 175 gr at 2600 fps scores 455
	ns := MomentumNs(GrainsToGrams(175), FPSToMPS(2600))
	if got := PowerFactorFromMomentum(ns); !near(got, 455, 1e-6) {
		t.Fatalf("power factor: want=455 got=%f", got)
	}
}

func TestShotReadingNormalize(t *testing.T) {
	v, temp, hum := 2600.0, 59.0, 40.0
	r := ShotReading{Velocity: &v, Temperature: &temp, Humidity: &hum}

	metric := r.Normalize(Metric)
	if metric.Velocity != r.Velocity {
		t.Fatalf("metric reading should pass through untouched")
	}

	out := r.Normalize(Imperial)
	if out.Velocity == nil || !near(*out.Velocity, 792.48, eps) {
		t.Fatalf("velocity: got=%v", out.Velocity)
	}
	if out.Temperature == nil || !near(*out.Temperature, 15, eps) {
		t.Fatalf("temperature: got=%v", out.Temperature)
	}
	if out.Humidity == nil || *out.Humidity != 40 {
		t.Fatalf("humidity should pass through: got=%v", out.Humidity)
	}
	if out.Pressure != nil {
		t.Fatalf("absent channel should stay absent")
	}
}

func TestFormatter(t *testing.T) {
	imp := NewFormatter(Imperial)
	if q := imp.Velocity(792.48); q.Unit != "ft/s" || !near(q.Value, 2600, eps) {
		t.Fatalf("imperial velocity: %+v", q)
	}
	met := NewFormatter(Metric)
	if q := met.Velocity(792.48); q.Unit != "m/s" || q.Value != 792.48 {
		t.Fatalf("metric velocity: %+v", q)
	}
	if q := met.BulletWeight(GrainsToGrams(140)); q.Unit != "gr" || !near(q.Value, 140, eps) {
		t.Fatalf("bullet weight is always grains: %+v", q)
	}
	if Ptr(nil, met.Distance) != nil {
		t.Fatalf("nil passthrough")
	}
}

func TestParseSystem(t *testing.T) {
	if ParseSystem("imperial") != Imperial || ParseSystem("") != Metric || ParseSystem("bogus") != Metric {
		t.Fatalf("unexpected ParseSystem results")
	}
}
