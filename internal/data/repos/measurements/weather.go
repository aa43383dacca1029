package measurements

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

type WeatherSeriesRepo interface {
	Create(dbc dbctx.Context, rows []*types.WeatherSeries) ([]*types.WeatherSeries, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.WeatherSeries, error)
	GetByOwnerAndID(dbc dbctx.Context, ownerID, id uuid.UUID) (*types.WeatherSeries, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.WeatherSeries, error)
	OwnerOf(dbc dbctx.Context, id uuid.UUID) (uuid.UUID, bool, error)
	Delete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error)
}

type weatherSeriesRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeatherSeriesRepo(db *gorm.DB, baseLog *logger.Logger) WeatherSeriesRepo {
	return &weatherSeriesRepo{db: db, log: baseLog.With("repo", "WeatherSeriesRepo")}
}

func (r *weatherSeriesRepo) Create(dbc dbctx.Context, rows []*types.WeatherSeries) ([]*types.WeatherSeries, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.WeatherSeries{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *weatherSeriesRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.WeatherSeries, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.WeatherSeries
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *weatherSeriesRepo) GetByOwnerAndID(dbc dbctx.Context, ownerID, id uuid.UUID) (*types.WeatherSeries, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.WeatherSeries
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

func (r *weatherSeriesRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.WeatherSeries, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.WeatherSeries
	if ownerID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *weatherSeriesRepo) OwnerOf(dbc dbctx.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	row, err := r.GetByID(dbc, id)
	if err != nil || row == nil {
		return uuid.Nil, false, err
	}
	return row.OwnerID, true, nil
}

// Delete removes the series and its samples.
func (r *weatherSeriesRepo) Delete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil {
		return false, nil
	}
	var deleted bool
	err := t.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&types.WeatherSeries{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("series_id = ?", id).Delete(&types.WeatherSample{}).Error
	})
	return deleted, err
}

type WeatherSampleRepo interface {
	Create(dbc dbctx.Context, rows []*types.WeatherSample) ([]*types.WeatherSample, error)
	ListBySeriesID(dbc dbctx.Context, seriesID uuid.UUID) ([]*types.WeatherSample, error)
}

type weatherSampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeatherSampleRepo(db *gorm.DB, baseLog *logger.Logger) WeatherSampleRepo {
	return &weatherSampleRepo{db: db, log: baseLog.With("repo", "WeatherSampleRepo")}
}

func (r *weatherSampleRepo) Create(dbc dbctx.Context, rows []*types.WeatherSample) ([]*types.WeatherSample, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.WeatherSample{}, nil
	}
	for _, row := range rows {
		row.Timestamp = row.Timestamp.UTC()
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBySeriesID returns samples in time order.
func (r *weatherSampleRepo) ListBySeriesID(dbc dbctx.Context, seriesID uuid.UUID) ([]*types.WeatherSample, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.WeatherSample
	if seriesID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("series_id = ?", seriesID).
		Order("timestamp ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
