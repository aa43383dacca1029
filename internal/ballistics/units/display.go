package units

// Quantity is a display-ready value with its unit label.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Formatter renders canonical values for a target unit system.
type Formatter struct {
	System System
}

func NewFormatter(sys System) Formatter { return Formatter{System: sys} }

func (f Formatter) Velocity(mps float64) Quantity {
	if f.System == Imperial {
		return Quantity{Value: MPSToFPS(mps), Unit: "ft/s"}
	}
	return Quantity{Value: mps, Unit: "m/s"}
}

func (f Formatter) Energy(j float64) Quantity {
	if f.System == Imperial {
		return Quantity{Value: JoulesToFootPounds(j), Unit: "ft·lbf"}
	}
	return Quantity{Value: j, Unit: "J"}
}

func (f Formatter) Temperature(c float64) Quantity {
	if f.System == Imperial {
		return Quantity{Value: CelsiusToFahrenheit(c), Unit: "°F"}
	}
	return Quantity{Value: c, Unit: "°C"}
}

func (f Formatter) Pressure(hPa float64) Quantity {
	if f.System == Imperial {
		return Quantity{Value: HPaToInHg(hPa), Unit: "inHg"}
	}
	return Quantity{Value: hPa, Unit: "hPa"}
}

func (f Formatter) Distance(m float64) Quantity {
	if f.System == Imperial {
		return Quantity{Value: MetersToYards(m), Unit: "yd"}
	}
	return Quantity{Value: m, Unit: "m"}
}

func (f Formatter) SmallLength(mm float64) Quantity {
	if f.System == Imperial {
		return Quantity{Value: MMToInches(mm), Unit: "in"}
	}
	return Quantity{Value: mm, Unit: "mm"}
}

func (f Formatter) WindSpeed(mps float64) Quantity {
	if f.System == Imperial {
		return Quantity{Value: MPSToMPH(mps), Unit: "mph"}
	}
	return Quantity{Value: mps, Unit: "m/s"}
}

// BulletWeight is always shown in grains, regardless of system.
func (f Formatter) BulletWeight(grams float64) Quantity {
	return Quantity{Value: GramsToGrains(grams), Unit: "gr"}
}

// Ptr applies fn when v is present.
func Ptr(v *float64, fn func(float64) Quantity) *Quantity {
	if v == nil {
		return nil
	}
	q := fn(*v)
	return &q
}
