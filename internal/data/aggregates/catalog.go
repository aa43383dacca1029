package aggregates

import (
	"github.com/google/uuid"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
)

// CatalogReader reads shared catalog entities. The redis cache in internal/data/cache satisfies it.
type CatalogReader interface {
	GetCartridge(dbc dbctx.Context, id uuid.UUID) (*types.Cartridge, error)
	GetBullet(dbc dbctx.Context, id uuid.UUID) (*types.Bullet, error)
}

type cartridgeGetter interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Cartridge, error)
}

type bulletGetter interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Bullet, error)
}

type repoCatalog struct {
	cartridges cartridgeGetter
	bullets    bulletGetter
}

// NewRepoCatalog adapts the catalog repos to CatalogReader.
func NewRepoCatalog(cartridges cartridgeGetter, bullets bulletGetter) CatalogReader {
	return repoCatalog{cartridges: cartridges, bullets: bullets}
}

func (c repoCatalog) GetCartridge(dbc dbctx.Context, id uuid.UUID) (*types.Cartridge, error) {
	return c.cartridges.GetByID(dbc, id)
}

func (c repoCatalog) GetBullet(dbc dbctx.Context, id uuid.UUID) (*types.Bullet, error) {
	return c.bullets.GetByID(dbc, id)
}
