package measurements

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeatherSeries struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id" json:"owner_id"`
	Name    string    `gorm:"column:name" json:"name"`
	Device  string    `gorm:"column:device" json:"device"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (WeatherSeries) TableName() string { return "weather_series" }

func (s *WeatherSeries) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// WeatherSample is one observation. Every channel is optional.
type WeatherSample struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SeriesID         uuid.UUID `gorm:"type:uuid;not null;index;column:series_id" json:"series_id"`
	Timestamp        time.Time `gorm:"not null;index;column:timestamp" json:"timestamp"`
	TemperatureC     *float64  `gorm:"column:temperature_c" json:"temperature_c,omitempty"`
	HumidityPct      *float64  `gorm:"column:humidity_pct" json:"humidity_pct,omitempty"`
	PressureHPa      *float64  `gorm:"column:pressure_hpa" json:"pressure_hpa,omitempty"`
	WindSpeedMps     *float64  `gorm:"column:wind_speed_mps" json:"wind_speed_mps,omitempty"`
	WindGustMps      *float64  `gorm:"column:wind_gust_mps" json:"wind_gust_mps,omitempty"`
	WindDirectionDeg *float64  `gorm:"column:wind_direction_deg" json:"wind_direction_deg,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (WeatherSample) TableName() string { return "weather_sample" }

func (s *WeatherSample) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
