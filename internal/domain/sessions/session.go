package sessions

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/dopebook-backend/internal/ballistics/units"
)

// Session is the flattened ballistic profile (DOPE). Leaf data is copied in at assembly time,
// so reads never join back to the rifle, catalog, chronograph, weather or range tables.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id" json:"owner_id"`
	Version   int       `gorm:"not null;default:1;column:version" json:"version"`
	Name      string    `gorm:"column:name" json:"name"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	StartTime time.Time `gorm:"not null;column:start_time" json:"start_time"`
	EndTime   time.Time `gorm:"not null;column:end_time" json:"end_time"`

	RifleID             uuid.UUID  `gorm:"type:uuid;not null;index;column:rifle_id" json:"rifle_id"`
	CartridgeID         uuid.UUID  `gorm:"type:uuid;not null;index;column:cartridge_id" json:"cartridge_id"`
	BulletID            uuid.UUID  `gorm:"type:uuid;not null;index;column:bullet_id" json:"bullet_id"`
	ChronographSeriesID uuid.UUID  `gorm:"type:uuid;not null;index;column:chronograph_series_id" json:"chronograph_series_id"`
	WeatherSeriesID     *uuid.UUID `gorm:"type:uuid;index;column:weather_series_id" json:"weather_series_id,omitempty"`
	RangeID             *uuid.UUID `gorm:"type:uuid;index;column:range_id" json:"range_id,omitempty"`

	RifleName           string   `gorm:"not null;column:rifle_name" json:"rifle_name"`
	BarrelLengthCM      *float64 `gorm:"column:barrel_length_cm" json:"barrel_length_cm,omitempty"`
	BarrelTwistInPerRev *float64 `gorm:"column:barrel_twist_in_per_rev" json:"barrel_twist_in_per_rev,omitempty"`

	CartridgeMake      string   `gorm:"column:cartridge_make" json:"cartridge_make"`
	CartridgeModel     string   `gorm:"column:cartridge_model" json:"cartridge_model"`
	CartridgeType      string   `gorm:"column:cartridge_type" json:"cartridge_type"`
	CartridgeLotNumber *string  `gorm:"column:cartridge_lot_number" json:"cartridge_lot_number,omitempty"`
	BulletMake         string   `gorm:"column:bullet_make" json:"bullet_make"`
	BulletModel        string   `gorm:"column:bullet_model" json:"bullet_model"`
	BulletWeightGrams  float64  `gorm:"not null;column:bullet_weight_grams" json:"bullet_weight_grams"`
	BoreDiameterLandMM string   `gorm:"not null;column:bore_diameter_land_mm" json:"bore_diameter_land_mm"`
	GrooveDiameterMM   *float64 `gorm:"column:groove_diameter_mm" json:"groove_diameter_mm,omitempty"`
	BulletLengthMM     *float64 `gorm:"column:bullet_length_mm" json:"bullet_length_mm,omitempty"`
	BCG1               *float64 `gorm:"column:bc_g1" json:"bc_g1,omitempty"`
	BCG7               *float64 `gorm:"column:bc_g7" json:"bc_g7,omitempty"`
	SectionalDensity   *float64 `gorm:"column:sectional_density" json:"sectional_density,omitempty"`

	ShotCount                int      `gorm:"not null;column:shot_count" json:"shot_count"`
	VelocityMinMps           float64  `gorm:"not null;column:velocity_min_mps" json:"velocity_min_mps"`
	VelocityMaxMps           float64  `gorm:"not null;column:velocity_max_mps" json:"velocity_max_mps"`
	VelocityAvgMps           float64  `gorm:"not null;column:velocity_avg_mps" json:"velocity_avg_mps"`
	VelocityStdDevMps        float64  `gorm:"not null;column:velocity_std_dev_mps" json:"velocity_std_dev_mps"`
	VelocityExtremeSpreadMps float64  `gorm:"not null;column:velocity_extreme_spread_mps" json:"velocity_extreme_spread_mps"`
	VelocityCVPercent        *float64 `gorm:"column:velocity_cv_percent" json:"velocity_cv_percent,omitempty"`

	WeatherTemperatureC     *float64 `gorm:"column:weather_temperature_c" json:"weather_temperature_c,omitempty"`
	WeatherHumidityPct      *float64 `gorm:"column:weather_humidity_pct" json:"weather_humidity_pct,omitempty"`
	WeatherPressureHPa      *float64 `gorm:"column:weather_pressure_hpa" json:"weather_pressure_hpa,omitempty"`
	WeatherWindSpeedMps     *float64 `gorm:"column:weather_wind_speed_mps" json:"weather_wind_speed_mps,omitempty"`
	WeatherWindGustMps      *float64 `gorm:"column:weather_wind_gust_mps" json:"weather_wind_gust_mps,omitempty"`
	WeatherWindDirectionDeg *float64 `gorm:"column:weather_wind_direction_deg" json:"weather_wind_direction_deg,omitempty"`
	WeatherSampleCount      int      `gorm:"not null;default:0;column:weather_sample_count" json:"weather_sample_count"`

	RangeName         *string  `gorm:"column:range_name" json:"range_name,omitempty"`
	Latitude          *float64 `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude         *float64 `gorm:"column:longitude" json:"longitude,omitempty"`
	AltitudeM         *float64 `gorm:"column:altitude_m" json:"altitude_m,omitempty"`
	DistanceM         *float64 `gorm:"column:distance_m" json:"distance_m,omitempty"`
	BearingDeg        *float64 `gorm:"column:bearing_deg" json:"bearing_deg,omitempty"`
	ElevationAngleDeg *float64 `gorm:"column:elevation_angle_deg" json:"elevation_angle_deg,omitempty"`
	MapLink           *string  `gorm:"column:map_link" json:"map_link,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Session) TableName() string { return "dope_session" }

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}

// BulletWeight exposes both the stored grams and the grains shooters group by.
func (s *Session) BulletWeight() units.BulletWeight {
	return units.NewBulletWeight(s.BulletWeightGrams)
}

// ClearWeather drops every weather-derived field.
func (s *Session) ClearWeather() {
	s.WeatherSeriesID = nil
	s.WeatherTemperatureC = nil
	s.WeatherHumidityPct = nil
	s.WeatherPressureHPa = nil
	s.WeatherWindSpeedMps = nil
	s.WeatherWindGustMps = nil
	s.WeatherWindDirectionDeg = nil
	s.WeatherSampleCount = 0
}

// ClearRange drops every range-derived field.
func (s *Session) ClearRange() {
	s.RangeID = nil
	s.RangeName = nil
	s.Latitude = nil
	s.Longitude = nil
	s.AltitudeM = nil
	s.DistanceM = nil
	s.BearingDeg = nil
	s.ElevationAngleDeg = nil
	s.MapLink = nil
}
