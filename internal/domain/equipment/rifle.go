package equipment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rifle is owned by exactly one user.
type Rifle struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID             uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id" json:"owner_id"`
	Name                string    `gorm:"not null;column:name" json:"name"`
	Caliber             string    `gorm:"column:caliber" json:"caliber"`
	BarrelLengthCM      *float64  `gorm:"column:barrel_length_cm" json:"barrel_length_cm,omitempty"`
	BarrelTwistInPerRev *float64  `gorm:"column:barrel_twist_in_per_rev" json:"barrel_twist_in_per_rev,omitempty"`
	SightHeightMM       *float64  `gorm:"column:sight_height_mm" json:"sight_height_mm,omitempty"`
	Notes               string    `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Rifle) TableName() string { return "rifle" }

func (r *Rifle) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
