package units

// System names the unit system a payload is expressed in.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// ParseSystem defaults to Metric for anything unrecognized.
func ParseSystem(raw string) System {
	switch raw {
	case "imperial", "IMPERIAL", "Imperial":
		return Imperial
	default:
		return Metric
	}
}

// ShotReading is one inbound chronograph/environment row as exported by a device.
// Field meaning depends on the System it is tagged with.
type ShotReading struct {
	Velocity         *float64
	Temperature      *float64
	Humidity         *float64
	Pressure         *float64
	WindSpeed        *float64
	WindDirectionDeg *float64
	TargetDistance   *float64
}

// Normalize converts a reading to canonical metric. Metric readings are returned unchanged;
// humidity and wind direction have no unit system and pass through.
func (r ShotReading) Normalize(sys System) ShotReading {
	if sys != Imperial {
		return r
	}
	return ShotReading{
		Velocity:         mapPtr(r.Velocity, FPSToMPS),
		Temperature:      mapPtr(r.Temperature, FahrenheitToCelsius),
		Humidity:         r.Humidity,
		Pressure:         mapPtr(r.Pressure, InHgToHPa),
		WindSpeed:        mapPtr(r.WindSpeed, MPHToMPS),
		WindDirectionDeg: r.WindDirectionDeg,
		TargetDistance:   mapPtr(r.TargetDistance, YardsToMeters),
	}
}

func mapPtr(v *float64, fn func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	out := fn(*v)
	return &out
}
