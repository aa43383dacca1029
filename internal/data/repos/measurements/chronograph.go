package measurements

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

type ChronographSeriesRepo interface {
	Create(dbc dbctx.Context, rows []*types.ChronographSeries) ([]*types.ChronographSeries, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ChronographSeries, error)
	GetByOwnerAndID(dbc dbctx.Context, ownerID, id uuid.UUID) (*types.ChronographSeries, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.ChronographSeries, error)
	OwnerOf(dbc dbctx.Context, id uuid.UUID) (uuid.UUID, bool, error)
	Delete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error)
}

type chronographSeriesRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChronographSeriesRepo(db *gorm.DB, baseLog *logger.Logger) ChronographSeriesRepo {
	return &chronographSeriesRepo{db: db, log: baseLog.With("repo", "ChronographSeriesRepo")}
}

func (r *chronographSeriesRepo) Create(dbc dbctx.Context, rows []*types.ChronographSeries) ([]*types.ChronographSeries, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ChronographSeries{}, nil
	}
	for _, row := range rows {
		row.StartTime = row.StartTime.UTC()
		row.EndTime = row.EndTime.UTC()
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *chronographSeriesRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ChronographSeries, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.ChronographSeries
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *chronographSeriesRepo) GetByOwnerAndID(dbc dbctx.Context, ownerID, id uuid.UUID) (*types.ChronographSeries, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.ChronographSeries
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

func (r *chronographSeriesRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.ChronographSeries, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.ChronographSeries
	if ownerID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("owner_id = ?", ownerID).
		Order("start_time DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *chronographSeriesRepo) OwnerOf(dbc dbctx.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	row, err := r.GetByID(dbc, id)
	if err != nil || row == nil {
		return uuid.Nil, false, err
	}
	return row.OwnerID, true, nil
}

// Delete removes the series and its samples.
func (r *chronographSeriesRepo) Delete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil {
		return false, nil
	}
	var deleted bool
	err := t.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&types.ChronographSeries{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("series_id = ?", id).Delete(&types.ChronographSample{}).Error
	})
	return deleted, err
}

type ChronographSampleRepo interface {
	Create(dbc dbctx.Context, rows []*types.ChronographSample) ([]*types.ChronographSample, error)
	ListBySeriesID(dbc dbctx.Context, seriesID uuid.UUID) ([]*types.ChronographSample, error)
}

type chronographSampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChronographSampleRepo(db *gorm.DB, baseLog *logger.Logger) ChronographSampleRepo {
	return &chronographSampleRepo{db: db, log: baseLog.With("repo", "ChronographSampleRepo")}
}

func (r *chronographSampleRepo) Create(dbc dbctx.Context, rows []*types.ChronographSample) ([]*types.ChronographSample, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ChronographSample{}, nil
	}
	for _, row := range rows {
		row.Timestamp = row.Timestamp.UTC()
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBySeriesID returns samples in shot order.
func (r *chronographSampleRepo) ListBySeriesID(dbc dbctx.Context, seriesID uuid.UUID) ([]*types.ChronographSample, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.ChronographSample
	if seriesID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("series_id = ?", seriesID).
		Order("shot_number ASC, timestamp ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
