package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/observability"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

type countingSource struct {
	cartridges map[uuid.UUID]*types.Cartridge
	bullets    map[uuid.UUID]*types.Bullet
	calls      int
}

func (s *countingSource) GetCartridge(_ dbctx.Context, id uuid.UUID) (*types.Cartridge, error) {
	s.calls++
	return s.cartridges[id], nil
}

func (s *countingSource) GetBullet(_ dbctx.Context, id uuid.UUID) (*types.Bullet, error) {
	s.calls++
	return s.bullets[id], nil
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("6f1c2a36-8a55-4a2a-9a3e-2d2f2b1f0c11")
	if got := CartridgeKey(id); got != "dopebook:catalog:cartridge:6f1c2a36-8a55-4a2a-9a3e-2d2f2b1f0c11" {
		t.Fatalf("cartridge key: %s", got)
	}
	if got := BulletKey(id); got != "dopebook:catalog:bullet:6f1c2a36-8a55-4a2a-9a3e-2d2f2b1f0c11" {
		t.Fatalf("bullet key: %s", got)
	}
}

func TestCatalogCacheWithoutRedisPassesThrough(t *testing.T) {
	b := &types.Bullet{ID: uuid.New(), BoreDiameterLandMM: "7.62"}
	src := &countingSource{bullets: map[uuid.UUID]*types.Bullet{b.ID: b}}
	c := NewCatalogCache(src, nil, 0, logger.Nop(), nil)

	for i := 0; i < 2; i++ {
		got, err := c.GetBullet(dbctx.Context{Ctx: context.Background()}, b.ID)
		if err != nil || got != b {
			t.Fatalf("GetBullet: got=%v err=%v", got, err)
		}
	}
	if src.calls != 2 {
		t.Fatalf("source calls: want=2 got=%d", src.calls)
	}
	if err := c.Invalidate(context.Background(), BulletKey(b.ID)); err != nil {
		t.Fatalf("Invalidate without redis: %v", err)
	}
}

func TestCatalogCacheFallsBackWhenRedisIsDown(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	cart := &types.Cartridge{ID: uuid.New(), Make: "Federal"}
	src := &countingSource{cartridges: map[uuid.UUID]*types.Cartridge{cart.ID: cart}}
	m := observability.NewMetrics()
	c := NewCatalogCache(src, rdb, time.Minute, logger.Nop(), m)

	got, err := c.GetCartridge(dbctx.Context{Ctx: context.Background()}, cart.ID)
	if err != nil {
		t.Fatalf("GetCartridge: %v", err)
	}
	if got == nil || got.Make != "Federal" {
		t.Fatalf("expected source row, got %+v", got)
	}
	if src.calls != 1 {
		t.Fatalf("source calls: want=1 got=%d", src.calls)
	}
}
