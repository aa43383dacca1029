package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/domain/sessions"
)

var SessionAggregateContract = Contract{
	Name:             "Dope.SessionAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Assembles a flattened session from rifle, catalog, chronograph, weather and range data and persists it with its shot samples atomically.",
}

// AssemblyPhase is the state of one composite assembly.
type AssemblyPhase string

const (
	PhasePending    AssemblyPhase = "pending"
	PhaseValidating AssemblyPhase = "validating"
	PhaseFetching   AssemblyPhase = "fetching"
	PhaseComputing  AssemblyPhase = "computing"
	PhaseFlattening AssemblyPhase = "flattening"
	PhasePersisting AssemblyPhase = "persisting"
	PhaseReturning  AssemblyPhase = "returning"
	PhaseDone       AssemblyPhase = "done"
	PhaseRejected   AssemblyPhase = "rejected"
)

// RejectionError records the phase an assembly was rejected in.
type RejectionError struct {
	Phase AssemblyPhase
	Cause error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("assembly rejected during %s: %v", e.Phase, e.Cause)
}

func (e *RejectionError) Unwrap() error { return e.Cause }

// IncompleteCompositeError lists the mandatory fields a flattened session is missing.
type IncompleteCompositeError struct {
	Missing []string
}

func (e *IncompleteCompositeError) Error() string {
	return "incomplete composite: missing " + strings.Join(e.Missing, ", ")
}

// SessionAggregate owns the composite session write boundary.
//
// Failures return *aggregates.Error with codes:
// CodeValidation, CodeOwnershipViolation, CodeIncompleteComposite, CodeInsufficientData,
// CodeNotFound, CodeConflict, CodeRetryable, CodeInternal.
type SessionAggregate interface {
	Aggregate

	// Create assembles and persists a session together with its initial samples in one transaction.
	Create(ctx context.Context, in CreateSessionInput) (CreateSessionResult, error)

	// Assemble runs every assembly phase except persistence. It has no side effects.
	Assemble(ctx context.Context, in AssembleInput) (AssembleResult, error)

	// Update edits a session under an optimistic version check and recomputes derived weather
	// and range fields when those references change.
	Update(ctx context.Context, in UpdateSessionInput) (*sessions.Session, error)

	CreateSample(ctx context.Context, in CreateSampleInput) (*sessions.ShotSample, error)

	// ImportSamples inserts all new samples or none. Samples whose timestamp already exists
	// in the session are skipped.
	ImportSamples(ctx context.Context, in ImportSamplesInput) (ImportSamplesResult, error)

	// Delete removes a session and its samples. It reports false when nothing owned by the
	// caller matched.
	Delete(ctx context.Context, sessionID, ownerID uuid.UUID) (bool, error)
}

// AssembleInput names every leaf a session is composed from.
type AssembleInput struct {
	OwnerID             uuid.UUID
	Name                string
	Notes               string
	RifleID             uuid.UUID
	CartridgeID         uuid.UUID
	ChronographSeriesID uuid.UUID
	WeatherSeriesID     *uuid.UUID
	RangeID             *uuid.UUID
}

type AssembleResult struct {
	Session *sessions.Session
	// Trace lists the phases the assembly passed through, in order.
	Trace []AssemblyPhase
}

type CreateSessionInput struct {
	AssembleInput
	// AutoCopySamples copies every chronograph sample into the session as a shot sample.
	AutoCopySamples bool
	// Samples are appended after any auto-copied samples.
	Samples []SampleInput
}

type CreateSessionResult struct {
	Session *sessions.Session
	Samples []*sessions.ShotSample
}

// SampleInput is one shot in canonical units. SequenceNumber 0 means "next in session".
type SampleInput struct {
	SequenceNumber         int
	Timestamp              time.Time
	VelocityMps            float64
	EnvTemperatureC        *float64
	EnvHumidityPct         *float64
	EnvPressureHPa         *float64
	EnvWindSpeedMps        *float64
	EnvWindDirectionDeg    *float64
	TargetDistanceM        *float64
	ElevationAdjustmentMil *float64
	WindageAdjustmentMil   *float64
	BoreCondition          sessions.BoreCondition
	Notes                  string
}

type CreateSampleInput struct {
	SessionID uuid.UUID
	OwnerID   uuid.UUID
	Sample    SampleInput
}

type ImportSamplesInput struct {
	SessionID uuid.UUID
	OwnerID   uuid.UUID
	Samples   []SampleInput
}

type ImportSamplesResult struct {
	Inserted []*sessions.ShotSample
	Skipped  int
}

// UpdateSessionInput carries optional edits. A nil pointer leaves the field unchanged;
// ClearWeather and ClearRange drop the reference and its derived fields.
type UpdateSessionInput struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	ExpectedVersion int
	Name            *string
	Notes           *string
	WeatherSeriesID *uuid.UUID
	RangeID         *uuid.UUID
	ClearWeather    bool
	ClearRange      bool
}
