// Package units is the normalization boundary between the canonical metric values stored at rest
// and the imperial values that devices export and shooters read.
//
// Canonical units: velocity m/s, energy J, temperature °C, pressure hPa, distance m,
// small lengths mm, bullet weight grams. ShotReading.Normalize on the way in and Formatter on
// the way out are the only places that convert. Everything else carries canonical values.
package units

import "math"

const (
	metersPerFoot       = 0.3048
	metersPerYard       = 0.9144
	mmPerInch           = 25.4
	gramsPerGrain       = 0.06479891
	hPaPerInHg          = 33.8638866667
	joulesPerFootPound  = 1.3558179483
	metersPerSecPerMPH  = 0.44704
	gramsPerKilogram    = 1000.0
	newtonSecPerPFUnits = gramsPerGrain / gramsPerKilogram * metersPerFoot * 1000.0
)

// FPSToMPS converts feet per second to meters per second.
func FPSToMPS(fps float64) float64 { return fps * metersPerFoot }

// MPSToFPS converts meters per second to feet per second.
func MPSToFPS(mps float64) float64 { return mps / metersPerFoot }

func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }
func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

func InHgToHPa(inHg float64) float64 { return inHg * hPaPerInHg }
func HPaToInHg(hPa float64) float64  { return hPa / hPaPerInHg }

func YardsToMeters(yd float64) float64 { return yd * metersPerYard }
func MetersToYards(m float64) float64  { return m / metersPerYard }

func InchesToMM(in float64) float64 { return in * mmPerInch }
func MMToInches(mm float64) float64 { return mm / mmPerInch }

func MPHToMPS(mph float64) float64 { return mph * metersPerSecPerMPH }
func MPSToMPH(mps float64) float64 { return mps / metersPerSecPerMPH }

func FootPoundsToJoules(ftlb float64) float64 { return ftlb * joulesPerFootPound }
func JoulesToFootPounds(j float64) float64    { return j / joulesPerFootPound }

func GrainsToGrams(gr float64) float64 { return gr * gramsPerGrain }
func GramsToGrains(g float64) float64  { return g / gramsPerGrain }

// BulletWeight carries both representations of a bullet mass. Grams is the stored value;
// Grains is what shooters read and group by. They are never interchangeable.
type BulletWeight struct {
	Grams  float64 `json:"grams"`
	Grains float64 `json:"grains"`
}

// NewBulletWeight builds a weight from the canonical grams value.
func NewBulletWeight(grams float64) BulletWeight {
	return BulletWeight{Grams: grams, Grains: GramsToGrains(grams)}
}

// GrainsBucket rounds the grains representation to the nearest whole grain for grouping.
func (w BulletWeight) GrainsBucket() int {
	return int(math.Round(w.Grains))
}

// KineticEnergyJ is ½·m·v² with m in grams and v in m/s.
func KineticEnergyJ(bulletGrams, velocityMps float64) float64 {
	m := bulletGrams / gramsPerKilogram
	return 0.5 * m * velocityMps * velocityMps
}

// MomentumNs is m·v in newton-seconds, the canonical form of power factor.
func MomentumNs(bulletGrams, velocityMps float64) float64 {
	return bulletGrams / gramsPerKilogram * velocityMps
}

// PowerFactorFromMomentum returns the match-scoring power factor (grains × fps / 1000).
func PowerFactorFromMomentum(ns float64) float64 {
	return ns / newtonSecPerPFUnits
}
