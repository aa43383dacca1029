package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/ballistics/units"
	types "github.com/yungbote/dopebook-backend/internal/domain"
	domainagg "github.com/yungbote/dopebook-backend/internal/domain/aggregates"
)

type assembleRequest struct {
	Name                string     `json:"name"`
	Notes               string     `json:"notes"`
	RifleID             uuid.UUID  `json:"rifle_id"`
	CartridgeID         uuid.UUID  `json:"cartridge_id"`
	ChronographSeriesID uuid.UUID  `json:"chronograph_series_id"`
	WeatherSeriesID     *uuid.UUID `json:"weather_series_id"`
	RangeID             *uuid.UUID `json:"range_id"`
}

func (r assembleRequest) input(ownerID uuid.UUID) domainagg.AssembleInput {
	return domainagg.AssembleInput{
		OwnerID:             ownerID,
		Name:                r.Name,
		Notes:               r.Notes,
		RifleID:             r.RifleID,
		CartridgeID:         r.CartridgeID,
		ChronographSeriesID: r.ChronographSeriesID,
		WeatherSeriesID:     r.WeatherSeriesID,
		RangeID:             r.RangeID,
	}
}

type createSessionRequest struct {
	assembleRequest
	AutoCopySamples bool            `json:"auto_copy_samples"`
	Samples         []sampleRequest `json:"samples"`
}

type updateSessionRequest struct {
	ExpectedVersion int        `json:"expected_version"`
	Name            *string    `json:"name"`
	Notes           *string    `json:"notes"`
	WeatherSeriesID *uuid.UUID `json:"weather_series_id"`
	RangeID         *uuid.UUID `json:"range_id"`
	ClearWeather    bool       `json:"clear_weather"`
	ClearRange      bool       `json:"clear_range"`
}

// sampleRequest is one shot as a client or device export sends it. Velocity, environment and
// distance are read in the unit system named by the units query parameter.
type sampleRequest struct {
	SequenceNumber         int                 `json:"sequence_number"`
	Timestamp              time.Time           `json:"timestamp"`
	Velocity               *float64            `json:"velocity"`
	Temperature            *float64            `json:"temperature"`
	Humidity               *float64            `json:"humidity"`
	Pressure               *float64            `json:"pressure"`
	WindSpeed              *float64            `json:"wind_speed"`
	WindDirectionDeg       *float64            `json:"wind_direction_deg"`
	TargetDistance         *float64            `json:"target_distance"`
	ElevationAdjustmentMil *float64            `json:"elevation_adjustment_mil"`
	WindageAdjustmentMil   *float64            `json:"windage_adjustment_mil"`
	BoreCondition          types.BoreCondition `json:"bore_condition"`
	Notes                  string              `json:"notes"`
}

// input normalizes the reading to canonical units. A missing velocity becomes zero and is
// rejected downstream.
func (r sampleRequest) input(sys units.System) domainagg.SampleInput {
	reading := units.ShotReading{
		Velocity:         r.Velocity,
		Temperature:      r.Temperature,
		Humidity:         r.Humidity,
		Pressure:         r.Pressure,
		WindSpeed:        r.WindSpeed,
		WindDirectionDeg: r.WindDirectionDeg,
		TargetDistance:   r.TargetDistance,
	}.Normalize(sys)

	var velocity float64
	if reading.Velocity != nil {
		velocity = *reading.Velocity
	}
	return domainagg.SampleInput{
		SequenceNumber:         r.SequenceNumber,
		Timestamp:              r.Timestamp,
		VelocityMps:            velocity,
		EnvTemperatureC:        reading.Temperature,
		EnvHumidityPct:         reading.Humidity,
		EnvPressureHPa:         reading.Pressure,
		EnvWindSpeedMps:        reading.WindSpeed,
		EnvWindDirectionDeg:    reading.WindDirectionDeg,
		TargetDistanceM:        reading.TargetDistance,
		ElevationAdjustmentMil: r.ElevationAdjustmentMil,
		WindageAdjustmentMil:   r.WindageAdjustmentMil,
		BoreCondition:          r.BoreCondition,
		Notes:                  r.Notes,
	}
}

func sampleInputs(reqs []sampleRequest, sys units.System) []domainagg.SampleInput {
	out := make([]domainagg.SampleInput, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.input(sys))
	}
	return out
}

// sessionDisplay is the unit-formatted view of a session's measured values.
type sessionDisplay struct {
	System             units.System    `json:"system"`
	BulletWeight       units.Quantity  `json:"bullet_weight"`
	VelocityAvg        units.Quantity  `json:"velocity_avg"`
	VelocityMin        units.Quantity  `json:"velocity_min"`
	VelocityMax        units.Quantity  `json:"velocity_max"`
	VelocityStdDev     units.Quantity  `json:"velocity_std_dev"`
	VelocityES         units.Quantity  `json:"velocity_extreme_spread"`
	BarrelLength       *units.Quantity `json:"barrel_length,omitempty"`
	WeatherTemperature *units.Quantity `json:"weather_temperature,omitempty"`
	WeatherPressure    *units.Quantity `json:"weather_pressure,omitempty"`
	WeatherWindSpeed   *units.Quantity `json:"weather_wind_speed,omitempty"`
	WeatherWindGust    *units.Quantity `json:"weather_wind_gust,omitempty"`
	Distance           *units.Quantity `json:"distance,omitempty"`
	Altitude           *units.Quantity `json:"altitude,omitempty"`
}

func displaySession(s *types.Session, sys units.System) sessionDisplay {
	f := units.NewFormatter(sys)
	var barrel *units.Quantity
	if s.BarrelLengthCM != nil {
		q := f.SmallLength(*s.BarrelLengthCM * 10)
		barrel = &q
	}
	return sessionDisplay{
		System:             sys,
		BulletWeight:       f.BulletWeight(s.BulletWeightGrams),
		VelocityAvg:        f.Velocity(s.VelocityAvgMps),
		VelocityMin:        f.Velocity(s.VelocityMinMps),
		VelocityMax:        f.Velocity(s.VelocityMaxMps),
		VelocityStdDev:     f.Velocity(s.VelocityStdDevMps),
		VelocityES:         f.Velocity(s.VelocityExtremeSpreadMps),
		BarrelLength:       barrel,
		WeatherTemperature: units.Ptr(s.WeatherTemperatureC, f.Temperature),
		WeatherPressure:    units.Ptr(s.WeatherPressureHPa, f.Pressure),
		WeatherWindSpeed:   units.Ptr(s.WeatherWindSpeedMps, f.WindSpeed),
		WeatherWindGust:    units.Ptr(s.WeatherWindGustMps, f.WindSpeed),
		Distance:           units.Ptr(s.DistanceM, f.Distance),
		Altitude:           units.Ptr(s.AltitudeM, f.Distance),
	}
}

type sessionView struct {
	Session      *types.Session     `json:"session"`
	BulletWeight units.BulletWeight `json:"bullet_weight"`
	Display      *sessionDisplay    `json:"display,omitempty"`
}

// viewSession attaches the display block only when the caller asked for a unit system.
func viewSession(s *types.Session, rawUnits string) sessionView {
	v := sessionView{Session: s, BulletWeight: s.BulletWeight()}
	if rawUnits != "" {
		d := displaySession(s, units.ParseSystem(rawUnits))
		v.Display = &d
	}
	return v
}

type sampleView struct {
	*types.ShotSample
	Velocity    *units.Quantity `json:"velocity,omitempty"`
	Energy      *units.Quantity `json:"energy,omitempty"`
	PowerFactor *float64        `json:"power_factor,omitempty"`
}

func viewSamples(samples []*types.ShotSample, rawUnits string) []sampleView {
	out := make([]sampleView, 0, len(samples))
	f := units.NewFormatter(units.ParseSystem(rawUnits))
	for _, s := range samples {
		v := sampleView{ShotSample: s}
		if rawUnits != "" {
			vel := f.Velocity(s.VelocityMps)
			v.Velocity = &vel
			v.Energy = units.Ptr(s.EnergyJ, f.Energy)
		}
		if s.PowerFactorNs != nil {
			pf := units.PowerFactorFromMomentum(*s.PowerFactorNs)
			v.PowerFactor = &pf
		}
		out = append(out, v)
	}
	return out
}
