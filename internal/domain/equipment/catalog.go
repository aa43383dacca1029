package equipment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bullet is a shared catalog entry. WeightGrams is canonical; grains is a derived view.
type Bullet struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Make               string    `gorm:"not null;column:make;index:idx_bullet_make_model" json:"make"`
	Model              string    `gorm:"not null;column:model;index:idx_bullet_make_model" json:"model"`
	WeightGrams        float64   `gorm:"not null;column:weight_grams" json:"weight_grams"`
	BoreDiameterLandMM string    `gorm:"not null;column:bore_diameter_land_mm" json:"bore_diameter_land_mm"`
	GrooveDiameterMM   *float64  `gorm:"column:groove_diameter_mm" json:"groove_diameter_mm,omitempty"`
	LengthMM           *float64  `gorm:"column:length_mm" json:"length_mm,omitempty"`
	BCG1               *float64  `gorm:"column:bc_g1" json:"bc_g1,omitempty"`
	BCG7               *float64  `gorm:"column:bc_g7" json:"bc_g7,omitempty"`
	SectionalDensity   *float64  `gorm:"column:sectional_density" json:"sectional_density,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Bullet) TableName() string { return "bullet" }

func (b *Bullet) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Cartridge is a shared catalog entry loaded with exactly one bullet.
type Cartridge struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Make          string    `gorm:"not null;column:make" json:"make"`
	Model         string    `gorm:"not null;column:model" json:"model"`
	CartridgeType string    `gorm:"column:cartridge_type" json:"cartridge_type"`
	LotNumber     *string   `gorm:"column:lot_number" json:"lot_number,omitempty"`
	BulletID      uuid.UUID `gorm:"type:uuid;not null;index;column:bullet_id" json:"bullet_id"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Cartridge) TableName() string { return "cartridge" }

func (c *Cartridge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
