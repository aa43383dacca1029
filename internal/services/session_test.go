package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/data/aggregates"
	"github.com/yungbote/dopebook-backend/internal/data/repos"
	repotest "github.com/yungbote/dopebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/dopebook-backend/internal/domain"
	domainagg "github.com/yungbote/dopebook-backend/internal/domain/aggregates"
)

func newTestSessionService(t *testing.T) (SessionService, repos.Set, func(owner uuid.UUID, grains float64) domainagg.AssembleInput) {
	t.Helper()
	db := repotest.DB(t)
	log := repotest.Logger(t)
	set := repos.NewSet(db, log)
	agg := aggregates.NewSessionAggregate(aggregates.SessionAggregateDeps{
		Base:               aggregates.BaseDeps{DB: db, Log: log},
		Rifles:             set.Rifles,
		Bullets:            set.Bullets,
		Cartridges:         set.Cartridges,
		ChronographSeries:  set.ChronographSeries,
		ChronographSamples: set.ChronographSamples,
		WeatherSeries:      set.WeatherSeries,
		WeatherSamples:     set.WeatherSamples,
		Ranges:             set.Ranges,
		Sessions:           set.Sessions,
		ShotSamples:        set.ShotSamples,
	})
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	seed := func(owner uuid.UUID, grains float64) domainagg.AssembleInput {
		rifle := repotest.SeedRifle(t, ctx, db, owner, "R1")
		bullet := repotest.SeedBullet(t, ctx, db, grains, "7.62")
		cartridge := repotest.SeedCartridge(t, ctx, db, bullet.ID)
		series, _ := repotest.SeedChronograph(t, ctx, db, owner, start, 790, 792, 791)
		return domainagg.AssembleInput{
			OwnerID:             owner,
			Name:                "load dev",
			RifleID:             rifle.ID,
			CartridgeID:         cartridge.ID,
			ChronographSeriesID: series.ID,
		}
	}
	return NewSessionService(log, agg, set.Sessions, set.ShotSamples), set, seed
}

func TestSessionServiceGetIsOwnerScoped(t *testing.T) {
	svc, _, seed := newTestSessionService(t)
	ctx := context.Background()
	owner := uuid.New()

	res, err := svc.Create(ctx, domainagg.CreateSessionInput{AssembleInput: seed(owner, 175), AutoCopySamples: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.Get(ctx, res.Session.ID, owner)
	if err != nil || got == nil {
		t.Fatalf("Get own: %v %v", got, err)
	}
	other, err := svc.Get(ctx, res.Session.ID, uuid.New())
	if err != nil || other != nil {
		t.Fatalf("Get foreign should be (nil, nil): %v %v", other, err)
	}
	missing, err := svc.Get(ctx, uuid.New(), owner)
	if err != nil || missing != nil {
		t.Fatalf("Get missing should be (nil, nil): %v %v", missing, err)
	}
}

func TestSessionServiceFilterByGrains(t *testing.T) {
	svc, _, seed := newTestSessionService(t)
	ctx := context.Background()
	owner := uuid.New()

	if _, err := svc.Create(ctx, domainagg.CreateSessionInput{AssembleInput: seed(owner, 175)}); err != nil {
		t.Fatalf("Create 175: %v", err)
	}
	if _, err := svc.Create(ctx, domainagg.CreateSessionInput{AssembleInput: seed(owner, 155)}); err != nil {
		t.Fatalf("Create 155: %v", err)
	}
	if _, err := svc.Create(ctx, domainagg.CreateSessionInput{AssembleInput: seed(uuid.New(), 175)}); err != nil {
		t.Fatalf("Create foreign: %v", err)
	}

	grains := 175.0
	rows, err := svc.Filter(ctx, owner, types.SessionFilter{BulletWeightGrains: &grains})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(rows) != 1 || rows[0].BulletWeight().GrainsBucket() != 175 {
		t.Fatalf("expected the single 175 gr session, got %d rows", len(rows))
	}
	all, err := svc.Filter(ctx, owner, types.SessionFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("unfiltered: rows=%d err=%v", len(all), err)
	}

	from := time.Now()
	to := from.Add(-time.Hour)
	if _, err := svc.Filter(ctx, owner, types.SessionFilter{From: &from, To: &to}); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("inverted window: expected validation, got %v", err)
	}
}

func TestSessionServiceListSamples(t *testing.T) {
	svc, _, seed := newTestSessionService(t)
	ctx := context.Background()
	owner := uuid.New()

	res, err := svc.Create(ctx, domainagg.CreateSessionInput{AssembleInput: seed(owner, 175), AutoCopySamples: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	samples, err := svc.ListSamples(ctx, res.Session.ID, owner)
	if err != nil || len(samples) != 3 {
		t.Fatalf("ListSamples: n=%d err=%v", len(samples), err)
	}
	if _, err := svc.ListSamples(ctx, res.Session.ID, uuid.New()); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("foreign ListSamples: expected not_found, got %v", err)
	}
}
