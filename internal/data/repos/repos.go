package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/dopebook-backend/internal/data/repos/equipment"
	"github.com/yungbote/dopebook-backend/internal/data/repos/measurements"
	"github.com/yungbote/dopebook-backend/internal/data/repos/ranges"
	"github.com/yungbote/dopebook-backend/internal/data/repos/sessions"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

type RifleRepo = equipment.RifleRepo
type BulletRepo = equipment.BulletRepo
type CartridgeRepo = equipment.CartridgeRepo

type ChronographSeriesRepo = measurements.ChronographSeriesRepo
type ChronographSampleRepo = measurements.ChronographSampleRepo
type WeatherSeriesRepo = measurements.WeatherSeriesRepo
type WeatherSampleRepo = measurements.WeatherSampleRepo

type RangeRepo = ranges.RangeRepo

type SessionRepo = sessions.SessionRepo
type ShotSampleRepo = sessions.ShotSampleRepo

func NewRifleRepo(db *gorm.DB, baseLog *logger.Logger) RifleRepo {
	return equipment.NewRifleRepo(db, baseLog)
}

func NewBulletRepo(db *gorm.DB, baseLog *logger.Logger) BulletRepo {
	return equipment.NewBulletRepo(db, baseLog)
}

func NewCartridgeRepo(db *gorm.DB, baseLog *logger.Logger) CartridgeRepo {
	return equipment.NewCartridgeRepo(db, baseLog)
}

func NewChronographSeriesRepo(db *gorm.DB, baseLog *logger.Logger) ChronographSeriesRepo {
	return measurements.NewChronographSeriesRepo(db, baseLog)
}

func NewChronographSampleRepo(db *gorm.DB, baseLog *logger.Logger) ChronographSampleRepo {
	return measurements.NewChronographSampleRepo(db, baseLog)
}

func NewWeatherSeriesRepo(db *gorm.DB, baseLog *logger.Logger) WeatherSeriesRepo {
	return measurements.NewWeatherSeriesRepo(db, baseLog)
}

func NewWeatherSampleRepo(db *gorm.DB, baseLog *logger.Logger) WeatherSampleRepo {
	return measurements.NewWeatherSampleRepo(db, baseLog)
}

func NewRangeRepo(db *gorm.DB, baseLog *logger.Logger) RangeRepo {
	return ranges.NewRangeRepo(db, baseLog)
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return sessions.NewSessionRepo(db, baseLog)
}

func NewShotSampleRepo(db *gorm.DB, baseLog *logger.Logger) ShotSampleRepo {
	return sessions.NewShotSampleRepo(db, baseLog)
}

// Set bundles every table repo the service layer needs.
type Set struct {
	Rifles             RifleRepo
	Bullets            BulletRepo
	Cartridges         CartridgeRepo
	ChronographSeries  ChronographSeriesRepo
	ChronographSamples ChronographSampleRepo
	WeatherSeries      WeatherSeriesRepo
	WeatherSamples     WeatherSampleRepo
	Ranges             RangeRepo
	Sessions           SessionRepo
	ShotSamples        ShotSampleRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Rifles:             NewRifleRepo(db, baseLog),
		Bullets:            NewBulletRepo(db, baseLog),
		Cartridges:         NewCartridgeRepo(db, baseLog),
		ChronographSeries:  NewChronographSeriesRepo(db, baseLog),
		ChronographSamples: NewChronographSampleRepo(db, baseLog),
		WeatherSeries:      NewWeatherSeriesRepo(db, baseLog),
		WeatherSamples:     NewWeatherSampleRepo(db, baseLog),
		Ranges:             NewRangeRepo(db, baseLog),
		Sessions:           NewSessionRepo(db, baseLog),
		ShotSamples:        NewShotSampleRepo(db, baseLog),
	}
}
