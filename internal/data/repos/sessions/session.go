package sessions

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

type SessionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Session) ([]*types.Session, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Session, error)
	GetByOwnerAndID(dbc dbctx.Context, ownerID, id uuid.UUID) (*types.Session, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID, f types.SessionFilter) ([]*types.Session, error)
	OwnerOf(dbc dbctx.Context, id uuid.UUID) (uuid.UUID, bool, error)
	Delete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "SessionRepo")}
}

func (r *sessionRepo) Create(dbc dbctx.Context, rows []*types.Session) ([]*types.Session, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Session{}, nil
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

func (r *sessionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Session, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Session
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *sessionRepo) GetByOwnerAndID(dbc dbctx.Context, ownerID, id uuid.UUID) (*types.Session, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.Session
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

// ListByOwner pushes reference, name and weight predicates into SQL and applies the
// time bounds in memory, newest first.
func (r *sessionRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID, f types.SessionFilter) ([]*types.Session, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.Session{}
	if ownerID == uuid.Nil {
		return out, nil
	}

	q := t.WithContext(dbc.Ctx).Model(&types.Session{}).Where("owner_id = ?", ownerID)
	if f.RifleID != nil {
		q = q.Where("rifle_id = ?", *f.RifleID)
	}
	if f.CartridgeID != nil {
		q = q.Where("cartridge_id = ?", *f.CartridgeID)
	}
	if f.BulletID != nil {
		q = q.Where("bullet_id = ?", *f.BulletID)
	}
	if f.RangeID != nil {
		q = q.Where("range_id = ?", *f.RangeID)
	}
	if name := strings.TrimSpace(f.NameContains); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if lo, hi, ok := f.GramsBounds(); ok {
		q = q.Where("bullet_weight_grams BETWEEN ? AND ?", lo, hi)
	}

	var rows []*types.Session
	if err := q.Order("start_time DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, s := range rows {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *sessionRepo) OwnerOf(dbc dbctx.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	row, err := r.GetByID(dbc, id)
	if err != nil || row == nil {
		return uuid.Nil, false, err
	}
	return row.OwnerID, true, nil
}

// Delete removes a session and its shot samples. Nothing else is touched.
func (r *sessionRepo) Delete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if ownerID == uuid.Nil || id == uuid.Nil {
		return false, nil
	}
	var deleted bool
	err := t.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&types.Session{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("session_id = ?", id).Delete(&types.ShotSample{}).Error
	})
	return deleted, err
}
