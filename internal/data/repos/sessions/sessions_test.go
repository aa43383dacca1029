package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/dopebook-backend/internal/ballistics/units"
	"github.com/yungbote/dopebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
)

func newSession(owner uuid.UUID, name string, start time.Time, grains float64) *types.Session {
	return &types.Session{
		ID:                  uuid.New(),
		OwnerID:             owner,
		Name:                name,
		StartTime:           start,
		EndTime:             start.Add(time.Minute),
		RifleID:             uuid.New(),
		CartridgeID:         uuid.New(),
		BulletID:            uuid.New(),
		ChronographSeriesID: uuid.New(),
		RifleName:           "R1",
		BulletWeightGrams:   units.GrainsToGrams(grains),
		BoreDiameterLandMM:  "7.62",
		ShotCount:           3,
		VelocityAvgMps:      791,
	}
}

func TestSessionRepoFilterAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)

	sessions := NewSessionRepo(db, log)
	samples := NewShotSampleRepo(db, log)

	alice, bob := uuid.New(), uuid.New()
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s1 := newSession(alice, "Spring ladder", t0, 175)
	s2 := newSession(alice, "Zero confirm", t0.Add(48*time.Hour), 168)
	s3 := newSession(bob, "Spring ladder", t0, 175)
	if _, err := sessions.Create(dbc, []*types.Session{s1, s2, s3}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s1.Version != 1 {
		t.Fatalf("initial version: want=1 got=%d", s1.Version)
	}

	all, err := sessions.ListByOwner(dbc, alice, types.SessionFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("ListByOwner: %v %d", err, len(all))
	}
	if all[0].ID != s2.ID {
		t.Fatalf("newest first: got=%s", all[0].Name)
	}

	grains := 175.0
	byWeight, err := sessions.ListByOwner(dbc, alice, types.SessionFilter{BulletWeightGrains: &grains})
	if err != nil || len(byWeight) != 1 || byWeight[0].ID != s1.ID {
		t.Fatalf("by weight: %v %+v", err, byWeight)
	}

	byName, err := sessions.ListByOwner(dbc, alice, types.SessionFilter{NameContains: "ZERO"})
	if err != nil || len(byName) != 1 || byName[0].ID != s2.ID {
		t.Fatalf("by name: %v %+v", err, byName)
	}

	from := t0.Add(24 * time.Hour)
	byTime, err := sessions.ListByOwner(dbc, alice, types.SessionFilter{From: &from})
	if err != nil || len(byTime) != 1 || byTime[0].ID != s2.ID {
		t.Fatalf("by time: %v %+v", err, byTime)
	}

	if got, _ := sessions.GetByOwnerAndID(dbc, bob, s1.ID); got != nil {
		t.Fatalf("bob should not read alice's session")
	}

	shots := []*types.ShotSample{
		{SessionID: s1.ID, SequenceNumber: 1, Timestamp: t0, VelocityMps: 790,
			BoreCondition: datatypes.NewJSONType(types.BoreCondition{ColdBore: true, CleanBore: true})},
		{SessionID: s1.ID, SequenceNumber: 2, Timestamp: t0.Add(time.Second), VelocityMps: 792},
	}
	if _, err := samples.Create(dbc, shots); err != nil {
		t.Fatalf("samples Create: %v", err)
	}
	if n, _ := samples.MaxSequence(dbc, s1.ID); n != 2 {
		t.Fatalf("MaxSequence: want=2 got=%d", n)
	}
	if n, _ := samples.MaxSequence(dbc, s2.ID); n != 0 {
		t.Fatalf("MaxSequence (empty): want=0 got=%d", n)
	}
	ts, err := samples.ListTimestamps(dbc, s1.ID)
	if err != nil || len(ts) != 2 {
		t.Fatalf("ListTimestamps: %v %v", err, ts)
	}
	if !ts[0].Equal(t0) && !ts[1].Equal(t0) {
		t.Fatalf("ListTimestamps: %v %v", err, ts)
	}
	listed, err := samples.ListBySessionID(dbc, s1.ID)
	if err != nil || len(listed) != 2 {
		t.Fatalf("ListBySessionID: %v %d", err, len(listed))
	}
	if !listed[0].BoreCondition.Data().ColdBore {
		t.Fatalf("bore condition did not round-trip: %+v", listed[0].BoreCondition.Data())
	}

	dup := []*types.ShotSample{{SessionID: s1.ID, SequenceNumber: 1, Timestamp: t0.Add(time.Hour), VelocityMps: 1}}
	err = tx.Transaction(func(inner *gorm.DB) error {
		_, err := samples.Create(dbctx.Context{Ctx: ctx, Tx: inner}, dup)
		return err
	})
	if err == nil {
		t.Fatalf("duplicate sequence number should violate the unique index")
	}

	deleted, err := sessions.Delete(dbc, bob, s1.ID)
	if err != nil || deleted {
		t.Fatalf("Delete (other owner): %v %v", deleted, err)
	}
	deleted, err = sessions.Delete(dbc, alice, s1.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete: %v %v", deleted, err)
	}
	if n, _ := samples.CountBySessionID(dbc, s1.ID); n != 0 {
		t.Fatalf("samples should cascade: %d left", n)
	}
	if got, _ := sessions.GetByID(dbc, s2.ID); got == nil {
		t.Fatalf("unrelated session must survive")
	}
}
