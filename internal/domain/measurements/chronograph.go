package measurements

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChronographSeries is one recorded shot string. StartTime and EndTime bound the firing window.
type ChronographSeries struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id" json:"owner_id"`
	Name      string    `gorm:"column:name" json:"name"`
	Device    string    `gorm:"column:device" json:"device"`
	StartTime time.Time `gorm:"not null;column:start_time" json:"start_time"`
	EndTime   time.Time `gorm:"not null;column:end_time" json:"end_time"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ChronographSeries) TableName() string { return "chronograph_series" }

func (s *ChronographSeries) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type ChronographSample struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SeriesID    uuid.UUID `gorm:"type:uuid;not null;index;column:series_id" json:"series_id"`
	ShotNumber  int       `gorm:"not null;column:shot_number" json:"shot_number"`
	Timestamp   time.Time `gorm:"not null;column:timestamp" json:"timestamp"`
	VelocityMps float64   `gorm:"not null;column:velocity_mps" json:"velocity_mps"`
	Notes       string    `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ChronographSample) TableName() string { return "chronograph_sample" }

func (s *ChronographSample) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
