package sessions

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BoreCondition flags are stored together as a JSON column.
type BoreCondition struct {
	CleanBore bool `json:"clean_bore"`
	ColdBore  bool `json:"cold_bore"`
	Fouled    bool `json:"fouled"`
}

// ShotSample is one shot within a session. Energy and power factor derive from the session's
// bullet weight and the shot velocity.
type ShotSample struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shot_sample_session_seq,priority:1;index:idx_shot_sample_session_ts,priority:1;column:session_id" json:"session_id"`
	SequenceNumber int       `gorm:"not null;uniqueIndex:idx_shot_sample_session_seq,priority:2;column:sequence_number" json:"sequence_number"`
	Timestamp      time.Time `gorm:"not null;index:idx_shot_sample_session_ts,priority:2;column:timestamp" json:"timestamp"`
	VelocityMps    float64   `gorm:"not null;column:velocity_mps" json:"velocity_mps"`
	EnergyJ        *float64  `gorm:"column:energy_j" json:"energy_j,omitempty"`
	PowerFactorNs  *float64  `gorm:"column:power_factor_ns" json:"power_factor_ns,omitempty"`

	EnvTemperatureC     *float64 `gorm:"column:env_temperature_c" json:"env_temperature_c,omitempty"`
	EnvHumidityPct      *float64 `gorm:"column:env_humidity_pct" json:"env_humidity_pct,omitempty"`
	EnvPressureHPa      *float64 `gorm:"column:env_pressure_hpa" json:"env_pressure_hpa,omitempty"`
	EnvWindSpeedMps     *float64 `gorm:"column:env_wind_speed_mps" json:"env_wind_speed_mps,omitempty"`
	EnvWindDirectionDeg *float64 `gorm:"column:env_wind_direction_deg" json:"env_wind_direction_deg,omitempty"`

	TargetDistanceM        *float64 `gorm:"column:target_distance_m" json:"target_distance_m,omitempty"`
	ElevationAdjustmentMil *float64 `gorm:"column:elevation_adjustment_mil" json:"elevation_adjustment_mil,omitempty"`
	WindageAdjustmentMil   *float64 `gorm:"column:windage_adjustment_mil" json:"windage_adjustment_mil,omitempty"`

	BoreCondition datatypes.JSONType[BoreCondition] `gorm:"column:bore_condition" json:"bore_condition"`
	Notes         string                            `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ShotSample) TableName() string { return "dope_shot_sample" }

func (s *ShotSample) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
