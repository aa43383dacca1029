package equipment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

type RifleRepo interface {
	Create(dbc dbctx.Context, rows []*types.Rifle) ([]*types.Rifle, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Rifle, error)
	GetByOwnerAndID(dbc dbctx.Context, ownerID, id uuid.UUID) (*types.Rifle, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Rifle, error)
	OwnerOf(dbc dbctx.Context, id uuid.UUID) (uuid.UUID, bool, error)
	UpdateFields(dbc dbctx.Context, ownerID, id uuid.UUID, updates map[string]any) error
	Delete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error)
}

type rifleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRifleRepo(db *gorm.DB, baseLog *logger.Logger) RifleRepo {
	return &rifleRepo{db: db, log: baseLog.With("repo", "RifleRepo")}
}

func (r *rifleRepo) Create(dbc dbctx.Context, rows []*types.Rifle) ([]*types.Rifle, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Rifle{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *rifleRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Rifle, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Rifle
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *rifleRepo) GetByOwnerAndID(dbc dbctx.Context, ownerID, id uuid.UUID) (*types.Rifle, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.Rifle
	if err := t.WithContext(dbc.Ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *rifleRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Rifle, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Rifle
	if ownerID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *rifleRepo) OwnerOf(dbc dbctx.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	row, err := r.GetByID(dbc, id)
	if err != nil || row == nil {
		return uuid.Nil, false, err
	}
	return row.OwnerID, true, nil
}

func (r *rifleRepo) UpdateFields(dbc dbctx.Context, ownerID, id uuid.UUID, updates map[string]any) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Rifle{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates).Error
}

func (r *rifleRepo) Delete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil {
		return false, nil
	}
	res := t.WithContext(dbc.Ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&types.Rifle{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
