// Package ownership defines who may fold which entity into a session.
//
// Shared entities (catalog bullets and cartridges) are readable by everyone and need only exist.
// Owned entities must exist and belong to the requester.
package ownership

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
)

type Kind string

const (
	KindRifle             Kind = "rifle"
	KindCartridge         Kind = "cartridge"
	KindBullet            Kind = "bullet"
	KindChronographSeries Kind = "chronograph_series"
	KindWeatherSeries     Kind = "weather_series"
	KindRange             Kind = "range"
	KindSession           Kind = "session"
)

type Visibility string

const (
	VisibilityShared Visibility = "shared"
	VisibilityOwned  Visibility = "owned"
)

// VisibilityOf is the single source of truth for the shared/owned split.
func VisibilityOf(k Kind) Visibility {
	switch k {
	case KindBullet, KindCartridge:
		return VisibilityShared
	default:
		return VisibilityOwned
	}
}

// Ref points at one entity a composite depends on.
type Ref struct {
	Kind Kind
	ID   uuid.UUID
}

func (r Ref) String() string { return fmt.Sprintf("%s:%s", r.Kind, r.ID) }

type Outcome string

const (
	Allowed Outcome = "allowed"
	Denied  Outcome = "denied"
)

type DenyReason string

const (
	ReasonNotFound DenyReason = "not_found"
	ReasonNotOwner DenyReason = "not_owner"
)

type Decision struct {
	Outcome Outcome
	Reason  DenyReason
}

func Allow() Decision                 { return Decision{Outcome: Allowed} }
func Deny(reason DenyReason) Decision { return Decision{Outcome: Denied, Reason: reason} }

func (d Decision) Allowed() bool { return d.Outcome == Allowed }

// Decide applies the policy to a lookup result. exists reports whether the row was found;
// ownerID is ignored for shared kinds.
func Decide(kind Kind, exists bool, ownerID, requesterID uuid.UUID) Decision {
	if !exists {
		return Deny(ReasonNotFound)
	}
	if VisibilityOf(kind) == VisibilityShared {
		return Allow()
	}
	if ownerID != requesterID {
		return Deny(ReasonNotOwner)
	}
	return Allow()
}

// ViolationError is the typed cause attached to an ownership_violation error.
type ViolationError struct {
	Ref         Ref
	RequesterID uuid.UUID
	Reason      DenyReason
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("ownership violation: %s (%s)", e.Ref, e.Reason)
}

// Validator decides whether requesterID may use ref. The error return is reserved for
// infrastructure failures; a denial is a Decision, not an error.
type Validator interface {
	Validate(dbc dbctx.Context, ref Ref, requesterID uuid.UUID) (Decision, error)
}
