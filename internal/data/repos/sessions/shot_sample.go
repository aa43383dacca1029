package sessions

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

type ShotSampleRepo interface {
	Create(dbc dbctx.Context, rows []*types.ShotSample) ([]*types.ShotSample, error)
	ListBySessionID(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.ShotSample, error)
	ListTimestamps(dbc dbctx.Context, sessionID uuid.UUID) ([]time.Time, error)
	MaxSequence(dbc dbctx.Context, sessionID uuid.UUID) (int, error)
	CountBySessionID(dbc dbctx.Context, sessionID uuid.UUID) (int64, error)
}

type shotSampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShotSampleRepo(db *gorm.DB, baseLog *logger.Logger) ShotSampleRepo {
	return &shotSampleRepo{db: db, log: baseLog.With("repo", "ShotSampleRepo")}
}

func (r *shotSampleRepo) Create(dbc dbctx.Context, rows []*types.ShotSample) ([]*types.ShotSample, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ShotSample{}, nil
	}
	for _, row := range rows {
		row.Timestamp = row.Timestamp.UTC()
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *shotSampleRepo) ListBySessionID(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.ShotSample, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.ShotSample{}
	if sessionID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("session_id = ?", sessionID).
		Order("sequence_number ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListTimestamps returns the idempotency keys already present in a session.
func (r *shotSampleRepo) ListTimestamps(dbc dbctx.Context, sessionID uuid.UUID) ([]time.Time, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []time.Time
	if sessionID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.ShotSample{}).
		Where("session_id = ?", sessionID).
		Pluck("timestamp", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *shotSampleRepo) MaxSequence(dbc dbctx.Context, sessionID uuid.UUID) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if sessionID == uuid.Nil {
		return 0, nil
	}
	var top int
	if err := t.WithContext(dbc.Ctx).
		Model(&types.ShotSample{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(MAX(sequence_number), 0)").
		Scan(&top).Error; err != nil {
		return 0, err
	}
	return top, nil
}

func (r *shotSampleRepo) CountBySessionID(dbc dbctx.Context, sessionID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if sessionID == uuid.Nil {
		return 0, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.ShotSample{}).
		Where("session_id = ?", sessionID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
