package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/data/repos"
	types "github.com/yungbote/dopebook-backend/internal/domain"
	domainagg "github.com/yungbote/dopebook-backend/internal/domain/aggregates"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

// SessionService is the core API. Every call carries the owner explicitly; writes go through the
// session aggregate and reads go straight to the table repos.
type SessionService interface {
	Create(ctx context.Context, in domainagg.CreateSessionInput) (domainagg.CreateSessionResult, error)
	Preview(ctx context.Context, in domainagg.AssembleInput) (domainagg.AssembleResult, error)
	Update(ctx context.Context, in domainagg.UpdateSessionInput) (*types.Session, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error)

	// Get returns (nil, nil) when the session does not exist or belongs to someone else.
	Get(ctx context.Context, id, ownerID uuid.UUID) (*types.Session, error)
	Filter(ctx context.Context, ownerID uuid.UUID, f types.SessionFilter) ([]*types.Session, error)

	CreateSample(ctx context.Context, sessionID, ownerID uuid.UUID, in domainagg.SampleInput) (*types.ShotSample, error)
	ImportSamples(ctx context.Context, sessionID, ownerID uuid.UUID, in []domainagg.SampleInput) (domainagg.ImportSamplesResult, error)
	ListSamples(ctx context.Context, sessionID, ownerID uuid.UUID) ([]*types.ShotSample, error)
}

type sessionService struct {
	log         *logger.Logger
	agg         domainagg.SessionAggregate
	sessions    repos.SessionRepo
	shotSamples repos.ShotSampleRepo
}

func NewSessionService(log *logger.Logger, agg domainagg.SessionAggregate, sessions repos.SessionRepo, shotSamples repos.ShotSampleRepo) SessionService {
	return &sessionService{
		log:         log.With("service", "SessionService"),
		agg:         agg,
		sessions:    sessions,
		shotSamples: shotSamples,
	}
}

func (s *sessionService) Create(ctx context.Context, in domainagg.CreateSessionInput) (domainagg.CreateSessionResult, error) {
	return s.agg.Create(ctx, in)
}

func (s *sessionService) Preview(ctx context.Context, in domainagg.AssembleInput) (domainagg.AssembleResult, error) {
	return s.agg.Assemble(ctx, in)
}

func (s *sessionService) Update(ctx context.Context, in domainagg.UpdateSessionInput) (*types.Session, error) {
	return s.agg.Update(ctx, in)
}

func (s *sessionService) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	return s.agg.Delete(ctx, id, ownerID)
}

func (s *sessionService) Get(ctx context.Context, id, ownerID uuid.UUID) (*types.Session, error) {
	return s.sessions.GetByOwnerAndID(dbctx.Context{Ctx: ctx}, ownerID, id)
}

func (s *sessionService) Filter(ctx context.Context, ownerID uuid.UUID, f types.SessionFilter) ([]*types.Session, error) {
	if ownerID == uuid.Nil {
		return []*types.Session{}, nil
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, domainagg.NewError(domainagg.CodeValidation, "Dope.Session.Filter", "to must not be before from", nil)
	}
	return s.sessions.ListByOwner(dbctx.Context{Ctx: ctx}, ownerID, f)
}

func (s *sessionService) CreateSample(ctx context.Context, sessionID, ownerID uuid.UUID, in domainagg.SampleInput) (*types.ShotSample, error) {
	return s.agg.CreateSample(ctx, domainagg.CreateSampleInput{SessionID: sessionID, OwnerID: ownerID, Sample: in})
}

func (s *sessionService) ImportSamples(ctx context.Context, sessionID, ownerID uuid.UUID, in []domainagg.SampleInput) (domainagg.ImportSamplesResult, error) {
	return s.agg.ImportSamples(ctx, domainagg.ImportSamplesInput{SessionID: sessionID, OwnerID: ownerID, Samples: in})
}

func (s *sessionService) ListSamples(ctx context.Context, sessionID, ownerID uuid.UUID) ([]*types.ShotSample, error) {
	dbc := dbctx.Context{Ctx: ctx}
	session, err := s.sessions.GetByOwnerAndID(dbc, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, "Dope.Session.ListSamples", "session not found", nil)
	}
	return s.shotSamples.ListBySessionID(dbc, session.ID)
}
