package equipment

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

// BulletRepo reads and writes the shared bullet catalog. There is no owner scoping.
type BulletRepo interface {
	Create(dbc dbctx.Context, rows []*types.Bullet) ([]*types.Bullet, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Bullet, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Bullet, error)
	Exists(dbc dbctx.Context, id uuid.UUID) (bool, error)
	List(dbc dbctx.Context, maker string) ([]*types.Bullet, error)
}

type bulletRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBulletRepo(db *gorm.DB, baseLog *logger.Logger) BulletRepo {
	return &bulletRepo{db: db, log: baseLog.With("repo", "BulletRepo")}
}

func (r *bulletRepo) Create(dbc dbctx.Context, rows []*types.Bullet) ([]*types.Bullet, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Bullet{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *bulletRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Bullet, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Bullet
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *bulletRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Bullet, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Bullet
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bulletRepo) Exists(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	var count int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Bullet{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bulletRepo) List(dbc dbctx.Context, maker string) ([]*types.Bullet, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).Model(&types.Bullet{})
	if maker != "" {
		q = q.Where("make = ?", maker)
	}
	var out []*types.Bullet
	if err := q.Order("make ASC, model ASC, weight_grams ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CartridgeRepo reads and writes the shared cartridge catalog.
type CartridgeRepo interface {
	Create(dbc dbctx.Context, rows []*types.Cartridge) ([]*types.Cartridge, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Cartridge, error)
	Exists(dbc dbctx.Context, id uuid.UUID) (bool, error)
	ListByBulletID(dbc dbctx.Context, bulletID uuid.UUID) ([]*types.Cartridge, error)
}

type cartridgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartridgeRepo(db *gorm.DB, baseLog *logger.Logger) CartridgeRepo {
	return &cartridgeRepo{db: db, log: baseLog.With("repo", "CartridgeRepo")}
}

func (r *cartridgeRepo) Create(dbc dbctx.Context, rows []*types.Cartridge) ([]*types.Cartridge, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Cartridge{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *cartridgeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Cartridge, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Cartridge
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *cartridgeRepo) Exists(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	var count int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Cartridge{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *cartridgeRepo) ListByBulletID(dbc dbctx.Context, bulletID uuid.UUID) ([]*types.Cartridge, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Cartridge
	if bulletID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("bullet_id = ?", bulletID).
		Order("make ASC, model ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
