package sessions

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/ballistics/units"
)

// DefaultGrainsTolerance groups bullets that differ by under half a grain.
const DefaultGrainsTolerance = 0.5

// Filter narrows a list of one owner's sessions. Zero-valued fields do not constrain.
type Filter struct {
	RifleID      *uuid.UUID
	CartridgeID  *uuid.UUID
	BulletID     *uuid.UUID
	RangeID      *uuid.UUID
	From         *time.Time
	To           *time.Time
	NameContains string
	// BulletWeightGrains matches sessions whose bullet weight in grains is within GrainsTolerance.
	BulletWeightGrains *float64
	GrainsTolerance    float64
}

// Tolerance returns the grains tolerance, falling back to the default.
func (f Filter) Tolerance() float64 {
	if f.GrainsTolerance > 0 {
		return f.GrainsTolerance
	}
	return DefaultGrainsTolerance
}

// GramsBounds converts the grains predicate into a canonical grams range.
func (f Filter) GramsBounds() (lo, hi float64, ok bool) {
	if f.BulletWeightGrains == nil {
		return 0, 0, false
	}
	tol := f.Tolerance()
	return units.GrainsToGrams(*f.BulletWeightGrains - tol), units.GrainsToGrams(*f.BulletWeightGrains + tol), true
}

// Matches evaluates the filter against one session in memory.
func (f Filter) Matches(s *Session) bool {
	if s == nil {
		return false
	}
	if f.RifleID != nil && s.RifleID != *f.RifleID {
		return false
	}
	if f.CartridgeID != nil && s.CartridgeID != *f.CartridgeID {
		return false
	}
	if f.BulletID != nil && s.BulletID != *f.BulletID {
		return false
	}
	if f.RangeID != nil && (s.RangeID == nil || *s.RangeID != *f.RangeID) {
		return false
	}
	if f.From != nil && s.StartTime.Before(*f.From) {
		return false
	}
	if f.To != nil && s.StartTime.After(*f.To) {
		return false
	}
	if f.NameContains != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	if f.BulletWeightGrains != nil {
		if math.Abs(s.BulletWeight().Grains-*f.BulletWeightGrains) > f.Tolerance() {
			return false
		}
	}
	return true
}
