// Package geometry derives firing-line geometry from a range's firing and target positions.
package geometry

import (
	"fmt"
	"math"
)

const earthRadiusM = 6371008.8

// Point is a WGS84 position. Altitude is meters above sea level and optional.
type Point struct {
	Lat       float64
	Lon       float64
	AltitudeM *float64
}

// Solution is the derived firing-line geometry. Fields are nil when not derivable.
type Solution struct {
	DistanceM         *float64
	BearingDeg        *float64
	ElevationAngleDeg *float64
	MapLink           string
}

// HaversineM is the great-circle distance between a and b.
func HaversineM(a, b Point) float64 {
	φ1, φ2 := rad(a.Lat), rad(b.Lat)
	dφ := rad(b.Lat - a.Lat)
	dλ := rad(b.Lon - a.Lon)
	h := math.Sin(dφ/2)*math.Sin(dφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(dλ/2)*math.Sin(dλ/2)
	return 2 * earthRadiusM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// InitialBearingDeg is the forward azimuth from a to b, normalized to [0,360).
func InitialBearingDeg(a, b Point) float64 {
	φ1, φ2 := rad(a.Lat), rad(b.Lat)
	dλ := rad(b.Lon - a.Lon)
	y := math.Sin(dλ) * math.Cos(φ2)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(dλ)
	return math.Mod(deg(math.Atan2(y, x))+360, 360)
}

// ElevationAngleDeg is the angle above (positive) or below the horizontal for a given
// altitude difference over a horizontal distance.
func ElevationAngleDeg(altDeltaM, horizontalM float64) float64 {
	if horizontalM == 0 {
		return 0
	}
	return deg(math.Atan2(altDeltaM, horizontalM))
}

// MapLink points at the firing position on OpenStreetMap.
func MapLink(p Point) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=16/%.6f/%.6f", p.Lat, p.Lon, p.Lat, p.Lon)
}

// Solve derives geometry between firing and target. A nil target yields only the map link.
func Solve(firing Point, target *Point) Solution {
	out := Solution{MapLink: MapLink(firing)}
	if target == nil {
		return out
	}
	d := HaversineM(firing, *target)
	b := InitialBearingDeg(firing, *target)
	out.DistanceM = &d
	out.BearingDeg = &b
	if firing.AltitudeM != nil && target.AltitudeM != nil {
		e := ElevationAngleDeg(*target.AltitudeM-*firing.AltitudeM, d)
		out.ElevationAngleDeg = &e
	}
	return out
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }
