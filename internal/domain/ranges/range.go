package ranges

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Range is a firing position with an optional target position. Distance, bearing and
// elevation angle may be recorded directly or derived from the two positions.
type Range struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID           uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id" json:"owner_id"`
	Name              string    `gorm:"not null;column:name" json:"name"`
	Latitude          float64   `gorm:"not null;column:latitude" json:"latitude"`
	Longitude         float64   `gorm:"not null;column:longitude" json:"longitude"`
	AltitudeM         *float64  `gorm:"column:altitude_m" json:"altitude_m,omitempty"`
	TargetLatitude    *float64  `gorm:"column:target_latitude" json:"target_latitude,omitempty"`
	TargetLongitude   *float64  `gorm:"column:target_longitude" json:"target_longitude,omitempty"`
	TargetAltitudeM   *float64  `gorm:"column:target_altitude_m" json:"target_altitude_m,omitempty"`
	DistanceM         *float64  `gorm:"column:distance_m" json:"distance_m,omitempty"`
	BearingDeg        *float64  `gorm:"column:bearing_deg" json:"bearing_deg,omitempty"`
	ElevationAngleDeg *float64  `gorm:"column:elevation_angle_deg" json:"elevation_angle_deg,omitempty"`
	Notes             string    `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Range) TableName() string { return "shooting_range" }

func (r *Range) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
