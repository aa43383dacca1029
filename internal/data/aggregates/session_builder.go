package aggregates

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/ballistics/geometry"
	"github.com/yungbote/dopebook-backend/internal/ballistics/velocity"
	"github.com/yungbote/dopebook-backend/internal/ballistics/weather"
	types "github.com/yungbote/dopebook-backend/internal/domain"
	domainagg "github.com/yungbote/dopebook-backend/internal/domain/aggregates"
)

// compositeBuilder flattens one value per leaf into a Session. Each setter copies only the
// fields its leaf owns, so a session never holds a reference back to the leaf row.
type compositeBuilder struct {
	s types.Session
}

func newCompositeBuilder(ownerID uuid.UUID, name, notes string) *compositeBuilder {
	return &compositeBuilder{s: types.Session{
		OwnerID: ownerID,
		Name:    strings.TrimSpace(name),
		Notes:   notes,
	}}
}

func (b *compositeBuilder) rifle(r *types.Rifle) *compositeBuilder {
	b.s.RifleID = r.ID
	b.s.RifleName = strings.TrimSpace(r.Name)
	b.s.BarrelLengthCM = copyFloat(r.BarrelLengthCM)
	b.s.BarrelTwistInPerRev = copyFloat(r.BarrelTwistInPerRev)
	return b
}

func (b *compositeBuilder) cartridge(c *types.Cartridge) *compositeBuilder {
	b.s.CartridgeID = c.ID
	b.s.CartridgeMake = c.Make
	b.s.CartridgeModel = c.Model
	b.s.CartridgeType = c.CartridgeType
	if c.LotNumber != nil {
		lot := *c.LotNumber
		b.s.CartridgeLotNumber = &lot
	}
	return b
}

func (b *compositeBuilder) bullet(bl *types.Bullet) *compositeBuilder {
	b.s.BulletID = bl.ID
	b.s.BulletMake = bl.Make
	b.s.BulletModel = bl.Model
	b.s.BulletWeightGrams = bl.WeightGrams
	b.s.BoreDiameterLandMM = strings.TrimSpace(bl.BoreDiameterLandMM)
	b.s.GrooveDiameterMM = copyFloat(bl.GrooveDiameterMM)
	b.s.BulletLengthMM = copyFloat(bl.LengthMM)
	b.s.BCG1 = copyFloat(bl.BCG1)
	b.s.BCG7 = copyFloat(bl.BCG7)
	b.s.SectionalDensity = copyFloat(bl.SectionalDensity)
	return b
}

func (b *compositeBuilder) chronograph(series *types.ChronographSeries, start, end time.Time, st velocity.Stats) *compositeBuilder {
	b.s.ChronographSeriesID = series.ID
	b.s.StartTime = start.UTC()
	b.s.EndTime = end.UTC()
	b.s.ShotCount = st.Count
	b.s.VelocityMinMps = st.Min
	b.s.VelocityMaxMps = st.Max
	b.s.VelocityAvgMps = st.Mean
	b.s.VelocityStdDevMps = st.StdDev
	b.s.VelocityExtremeSpreadMps = st.ExtremeSpread
	b.s.VelocityCVPercent = copyFloat(st.CV)
	return b
}

// weather records the series reference even when no reading fell inside the window.
func (b *compositeBuilder) weather(seriesID uuid.UUID, red *weather.Reduced) *compositeBuilder {
	id := seriesID
	b.s.WeatherSeriesID = &id
	applyWeather(&b.s, red)
	return b
}

func (b *compositeBuilder) rangeGeometry(rg *types.Range, sol geometry.Solution) *compositeBuilder {
	applyRange(&b.s, rg, sol)
	return b
}

// build runs the completeness gate and returns a detached copy.
func (b *compositeBuilder) build() (*types.Session, error) {
	var missing []string
	if b.s.OwnerID == uuid.Nil {
		missing = append(missing, "owner_id")
	}
	if b.s.RifleID == uuid.Nil {
		missing = append(missing, "rifle_id")
	}
	if b.s.CartridgeID == uuid.Nil {
		missing = append(missing, "cartridge_id")
	}
	if b.s.BulletID == uuid.Nil {
		missing = append(missing, "bullet_id")
	}
	if b.s.ChronographSeriesID == uuid.Nil {
		missing = append(missing, "chronograph_series_id")
	}
	if b.s.RifleName == "" {
		missing = append(missing, "rifle_name")
	}
	if b.s.BoreDiameterLandMM == "" {
		missing = append(missing, "bore_diameter_land_mm")
	}
	if b.s.BulletWeightGrams <= 0 {
		missing = append(missing, "bullet_weight_grams")
	}
	if b.s.ShotCount < 1 {
		missing = append(missing, "velocity_stats")
	}
	if b.s.StartTime.IsZero() {
		missing = append(missing, "start_time")
	}
	if b.s.EndTime.IsZero() {
		missing = append(missing, "end_time")
	}
	if len(missing) > 0 {
		return nil, &domainagg.IncompleteCompositeError{Missing: missing}
	}
	out := b.s
	return &out, nil
}

func applyWeather(s *types.Session, red *weather.Reduced) {
	if red == nil {
		s.WeatherTemperatureC = nil
		s.WeatherHumidityPct = nil
		s.WeatherPressureHPa = nil
		s.WeatherWindSpeedMps = nil
		s.WeatherWindGustMps = nil
		s.WeatherWindDirectionDeg = nil
		s.WeatherSampleCount = 0
		return
	}
	s.WeatherTemperatureC = copyFloat(red.TemperatureC)
	s.WeatherHumidityPct = copyFloat(red.HumidityPct)
	s.WeatherPressureHPa = copyFloat(red.PressureHPa)
	s.WeatherWindSpeedMps = copyFloat(red.WindSpeedMps)
	s.WeatherWindGustMps = copyFloat(red.WindGustMps)
	s.WeatherWindDirectionDeg = copyFloat(red.WindDirectionLinear)
	s.WeatherSampleCount = red.SampleCount
}

// applyRange copies range position and geometry. Values stored on the range win over computed ones.
func applyRange(s *types.Session, rg *types.Range, sol geometry.Solution) {
	id := rg.ID
	name := rg.Name
	lat, lon := rg.Latitude, rg.Longitude
	s.RangeID = &id
	s.RangeName = &name
	s.Latitude = &lat
	s.Longitude = &lon
	s.AltitudeM = copyFloat(rg.AltitudeM)
	s.DistanceM = firstFloat(rg.DistanceM, sol.DistanceM)
	s.BearingDeg = firstFloat(rg.BearingDeg, sol.BearingDeg)
	s.ElevationAngleDeg = firstFloat(rg.ElevationAngleDeg, sol.ElevationAngleDeg)
	if sol.MapLink != "" {
		link := sol.MapLink
		s.MapLink = &link
	} else {
		s.MapLink = nil
	}
}

func rangePoints(rg *types.Range) (geometry.Point, *geometry.Point) {
	firing := geometry.Point{Lat: rg.Latitude, Lon: rg.Longitude, AltitudeM: rg.AltitudeM}
	if rg.TargetLatitude == nil || rg.TargetLongitude == nil {
		return firing, nil
	}
	return firing, &geometry.Point{Lat: *rg.TargetLatitude, Lon: *rg.TargetLongitude, AltitudeM: rg.TargetAltitudeM}
}

func weatherReadings(rows []*types.WeatherSample) []weather.Reading {
	out := make([]weather.Reading, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, weather.Reading{
			Timestamp:        r.Timestamp,
			TemperatureC:     r.TemperatureC,
			HumidityPct:      r.HumidityPct,
			PressureHPa:      r.PressureHPa,
			WindSpeedMps:     r.WindSpeedMps,
			WindGustMps:      r.WindGustMps,
			WindDirectionDeg: r.WindDirectionDeg,
		})
	}
	return out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func firstFloat(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return copyFloat(v)
		}
	}
	return nil
}
