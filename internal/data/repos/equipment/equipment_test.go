package equipment

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/data/repos/testutil"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
)

func TestRifleRepoOwnerScoping(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewRifleRepo(db, testutil.Logger(t))
	alice, bob := uuid.New(), uuid.New()
	r1 := testutil.SeedRifle(t, ctx, tx, alice, "R1")
	testutil.SeedRifle(t, ctx, tx, bob, "B1")

	got, err := repo.GetByOwnerAndID(dbc, alice, r1.ID)
	if err != nil {
		t.Fatalf("GetByOwnerAndID: %v", err)
	}
	if got == nil || got.Name != "R1" {
		t.Fatalf("GetByOwnerAndID: unexpected %+v", got)
	}

	got, err = repo.GetByOwnerAndID(dbc, bob, r1.ID)
	if err != nil {
		t.Fatalf("GetByOwnerAndID (other owner): %v", err)
	}
	if got != nil {
		t.Fatalf("GetByOwnerAndID (other owner): expected nil, got %+v", got)
	}

	owner, ok, err := repo.OwnerOf(dbc, r1.ID)
	if err != nil || !ok || owner != alice {
		t.Fatalf("OwnerOf: owner=%s ok=%v err=%v", owner, ok, err)
	}
	if _, ok, _ := repo.OwnerOf(dbc, uuid.New()); ok {
		t.Fatalf("OwnerOf (missing): expected !ok")
	}

	list, err := repo.ListByOwner(dbc, alice)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 1 || list[0].ID != r1.ID {
		t.Fatalf("ListByOwner: unexpected %+v", list)
	}

	if err := repo.UpdateFields(dbc, alice, r1.ID, map[string]any{"notes": "new stock"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, _ = repo.GetByID(dbc, r1.ID)
	if got.Notes != "new stock" {
		t.Fatalf("UpdateFields: notes=%q", got.Notes)
	}

	deleted, err := repo.Delete(dbc, bob, r1.ID)
	if err != nil || deleted {
		t.Fatalf("Delete (other owner): deleted=%v err=%v", deleted, err)
	}
	deleted, err = repo.Delete(dbc, alice, r1.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete: deleted=%v err=%v", deleted, err)
	}
	if got, _ := repo.GetByID(dbc, r1.ID); got != nil {
		t.Fatalf("GetByID after delete: expected nil")
	}
}

func TestCatalogRepos(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	bullets := NewBulletRepo(db, testutil.Logger(t))
	cartridges := NewCartridgeRepo(db, testutil.Logger(t))

	b := testutil.SeedBullet(t, ctx, tx, 175, "7.62")
	c := testutil.SeedCartridge(t, ctx, tx, b.ID)

	gotB, err := bullets.GetByID(dbc, b.ID)
	if err != nil || gotB == nil {
		t.Fatalf("bullet GetByID: %v %+v", err, gotB)
	}
	if gotB.BoreDiameterLandMM != "7.62" {
		t.Fatalf("bore diameter: got=%q", gotB.BoreDiameterLandMM)
	}

	exists, err := cartridges.Exists(dbc, c.ID)
	if err != nil || !exists {
		t.Fatalf("cartridge Exists: %v %v", exists, err)
	}
	exists, err = bullets.Exists(dbc, uuid.New())
	if err != nil || exists {
		t.Fatalf("bullet Exists (missing): %v %v", exists, err)
	}

	byBullet, err := cartridges.ListByBulletID(dbc, b.ID)
	if err != nil || len(byBullet) != 1 || byBullet[0].ID != c.ID {
		t.Fatalf("ListByBulletID: %v %+v", err, byBullet)
	}

	list, err := bullets.List(dbc, "Sierra")
	if err != nil || len(list) != 1 {
		t.Fatalf("List: %v %d", err, len(list))
	}
	many, err := bullets.GetByIDs(dbc, []uuid.UUID{b.ID, uuid.New()})
	if err != nil || len(many) != 1 {
		t.Fatalf("GetByIDs: %v %d", err, len(many))
	}
}
