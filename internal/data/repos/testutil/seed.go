package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/dopebook-backend/internal/ballistics/units"
	types "github.com/yungbote/dopebook-backend/internal/domain"
)

func SeedRifle(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) *types.Rifle {
	tb.Helper()
	twist := 10.0
	r := &types.Rifle{
		ID:                  uuid.New(),
		OwnerID:             ownerID,
		Name:                name,
		Caliber:             ".308 Win",
		BarrelTwistInPerRev: &twist,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed rifle: %v", err)
	}
	return r
}

func SeedBullet(tb testing.TB, ctx context.Context, tx *gorm.DB, grains float64, bore string) *types.Bullet {
	tb.Helper()
	g7 := 0.243
	b := &types.Bullet{
		ID:                 uuid.New(),
		Make:               "Sierra",
		Model:              "MatchKing",
		WeightGrams:        units.GrainsToGrams(grains),
		BoreDiameterLandMM: bore,
		BCG7:               &g7,
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed bullet: %v", err)
	}
	return b
}

func SeedCartridge(tb testing.TB, ctx context.Context, tx *gorm.DB, bulletID uuid.UUID) *types.Cartridge {
	tb.Helper()
	c := &types.Cartridge{
		ID:            uuid.New(),
		Make:          "Federal",
		Model:         "Gold Medal Match",
		CartridgeType: ".308 Win",
		BulletID:      bulletID,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed cartridge: %v", err)
	}
	return c
}

// SeedChronograph creates a series with one sample per velocity, one second apart from start.
func SeedChronograph(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, start time.Time, velocities ...float64) (*types.ChronographSeries, []*types.ChronographSample) {
	tb.Helper()
	start = start.UTC()
	end := start
	if len(velocities) > 1 {
		end = start.Add(time.Duration(len(velocities)-1) * time.Second)
	}
	s := &types.ChronographSeries{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      "string",
		Device:    "LabRadar",
		StartTime: start,
		EndTime:   end,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed chronograph series: %v", err)
	}
	samples := make([]*types.ChronographSample, 0, len(velocities))
	for i, v := range velocities {
		samples = append(samples, &types.ChronographSample{
			ID:          uuid.New(),
			SeriesID:    s.ID,
			ShotNumber:  i + 1,
			Timestamp:   start.Add(time.Duration(i) * time.Second),
			VelocityMps: v,
		})
	}
	if len(samples) > 0 {
		if err := tx.WithContext(ctx).Create(&samples).Error; err != nil {
			tb.Fatalf("seed chronograph samples: %v", err)
		}
	}
	return s, samples
}

// WeatherPoint is a timestamped temperature/pressure pair for seeding.
type WeatherPoint struct {
	At           time.Time
	TemperatureC *float64
	PressureHPa  *float64
}

func SeedWeather(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, points ...WeatherPoint) *types.WeatherSeries {
	tb.Helper()
	s := &types.WeatherSeries{ID: uuid.New(), OwnerID: ownerID, Name: "kestrel", Device: "Kestrel 5700"}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed weather series: %v", err)
	}
	for _, p := range points {
		row := &types.WeatherSample{
			ID:           uuid.New(),
			SeriesID:     s.ID,
			Timestamp:    p.At.UTC(),
			TemperatureC: p.TemperatureC,
			PressureHPa:  p.PressureHPa,
		}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed weather sample: %v", err)
		}
	}
	return s
}

func SeedRange(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) *types.Range {
	tb.Helper()
	alt, tlat, tlon, talt := 300.0, 45.0045, 10.0, 305.0
	r := &types.Range{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Name:            name,
		Latitude:        45.0,
		Longitude:       10.0,
		AltitudeM:       &alt,
		TargetLatitude:  &tlat,
		TargetLongitude: &tlon,
		TargetAltitudeM: &talt,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed range: %v", err)
	}
	return r
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }

func PtrFloat(v float64) *float64 { return &v }
