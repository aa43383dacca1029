package ranges

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

type RangeRepo interface {
	Create(dbc dbctx.Context, rows []*types.Range) ([]*types.Range, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Range, error)
	GetByOwnerAndID(dbc dbctx.Context, ownerID, id uuid.UUID) (*types.Range, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Range, error)
	OwnerOf(dbc dbctx.Context, id uuid.UUID) (uuid.UUID, bool, error)
	UpdateFields(dbc dbctx.Context, ownerID, id uuid.UUID, updates map[string]any) error
	Delete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error)
}

type rangeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRangeRepo(db *gorm.DB, baseLog *logger.Logger) RangeRepo {
	return &rangeRepo{db: db, log: baseLog.With("repo", "RangeRepo")}
}

func (r *rangeRepo) Create(dbc dbctx.Context, rows []*types.Range) ([]*types.Range, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Range{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *rangeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Range, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Range
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *rangeRepo) GetByOwnerAndID(dbc dbctx.Context, ownerID, id uuid.UUID) (*types.Range, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.Range
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

func (r *rangeRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Range, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Range
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

func (r *rangeRepo) OwnerOf(dbc dbctx.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	row, err := r.GetByID(dbc, id)
	if err != nil || row == nil {
		return uuid.Nil, false, err
	}
	return row.OwnerID, true, nil
}

func (r *rangeRepo) UpdateFields(dbc dbctx.Context, ownerID, id uuid.UUID, updates map[string]any) error {
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
		Model(&types.Range{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates).Error
}

func (r *rangeRepo) Delete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil {
		return false, nil
	}
	res := t.WithContext(dbc.Ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&types.Range{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
