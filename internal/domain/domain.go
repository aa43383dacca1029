package domain

import (
	"github.com/yungbote/dopebook-backend/internal/domain/equipment"
	"github.com/yungbote/dopebook-backend/internal/domain/measurements"
	"github.com/yungbote/dopebook-backend/internal/domain/ranges"
	"github.com/yungbote/dopebook-backend/internal/domain/sessions"
)

type (
	Rifle     = equipment.Rifle
	Bullet    = equipment.Bullet
	Cartridge = equipment.Cartridge

	ChronographSeries = measurements.ChronographSeries
	ChronographSample = measurements.ChronographSample
	WeatherSeries     = measurements.WeatherSeries
	WeatherSample     = measurements.WeatherSample

	Range = ranges.Range

	Session       = sessions.Session
	ShotSample    = sessions.ShotSample
	BoreCondition = sessions.BoreCondition
	SessionFilter = sessions.Filter
)

// AllModels lists every persisted type in dependency order.
func AllModels() []any {
	return []any{
		&Rifle{},
		&Bullet{},
		&Cartridge{},
		&ChronographSeries{},
		&ChronographSample{},
		&WeatherSeries{},
		&WeatherSample{},
		&Range{},
		&Session{},
		&ShotSample{},
	}
}
