package aggregates

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/domain/ownership"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

// OwnerLookup resolves the owner of an owned entity. ok is false when the row does not exist.
type OwnerLookup interface {
	OwnerOf(dbc dbctx.Context, id uuid.UUID) (owner uuid.UUID, ok bool, err error)
}

// ExistenceLookup reports whether a shared entity exists.
type ExistenceLookup interface {
	Exists(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type OwnershipValidatorDeps struct {
	Log *logger.Logger

	Rifles      OwnerLookup
	Chronograph OwnerLookup
	Weather     OwnerLookup
	Ranges      OwnerLookup
	Sessions    OwnerLookup

	Bullets    ExistenceLookup
	Cartridges ExistenceLookup
}

type repoOwnershipValidator struct {
	log    *logger.Logger
	owned  map[ownership.Kind]OwnerLookup
	shared map[ownership.Kind]ExistenceLookup
}

// NewOwnershipValidator returns a validator backed by table repos.
func NewOwnershipValidator(deps OwnershipValidatorDeps) ownership.Validator {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	v := &repoOwnershipValidator{
		log:    log.With("component", "OwnershipValidator"),
		owned:  map[ownership.Kind]OwnerLookup{},
		shared: map[ownership.Kind]ExistenceLookup{},
	}
	for kind, l := range map[ownership.Kind]OwnerLookup{
		ownership.KindRifle:             deps.Rifles,
		ownership.KindChronographSeries: deps.Chronograph,
		ownership.KindWeatherSeries:     deps.Weather,
		ownership.KindRange:             deps.Ranges,
		ownership.KindSession:           deps.Sessions,
	} {
		if l != nil {
			v.owned[kind] = l
		}
	}
	for kind, l := range map[ownership.Kind]ExistenceLookup{
		ownership.KindBullet:    deps.Bullets,
		ownership.KindCartridge: deps.Cartridges,
	} {
		if l != nil {
			v.shared[kind] = l
		}
	}
	return v
}

func (v *repoOwnershipValidator) Validate(dbc dbctx.Context, ref ownership.Ref, requesterID uuid.UUID) (ownership.Decision, error) {
	if ref.ID == uuid.Nil {
		return ownership.Deny(ownership.ReasonNotFound), nil
	}
	if ownership.VisibilityOf(ref.Kind) == ownership.VisibilityShared {
		lookup, ok := v.shared[ref.Kind]
		if !ok {
			return ownership.Decision{}, fmt.Errorf("no existence lookup for %s", ref.Kind)
		}
		exists, err := lookup.Exists(dbc, ref.ID)
		if err != nil {
			return ownership.Decision{}, err
		}
		return ownership.Decide(ref.Kind, exists, uuid.Nil, requesterID), nil
	}

	lookup, ok := v.owned[ref.Kind]
	if !ok {
		return ownership.Decision{}, fmt.Errorf("no owner lookup for %s", ref.Kind)
	}
	owner, exists, err := lookup.OwnerOf(dbc, ref.ID)
	if err != nil {
		return ownership.Decision{}, err
	}
	d := ownership.Decide(ref.Kind, exists, owner, requesterID)
	if !d.Allowed() {
		v.log.Warn("ownership denied",
			"kind", string(ref.Kind),
			"ref_id", ref.ID.String(),
			"owner_id", requesterID.String(),
			"reason", string(d.Reason),
		)
	}
	return d, nil
}

// requireOwnership validates refs in order and returns a *ownership.ViolationError for the first denial.
func requireOwnership(dbc dbctx.Context, v ownership.Validator, requesterID uuid.UUID, refs ...ownership.Ref) error {
	for _, ref := range refs {
		d, err := v.Validate(dbc, ref, requesterID)
		if err != nil {
			return err
		}
		if !d.Allowed() {
			return &ownership.ViolationError{Ref: ref, RequesterID: requesterID, Reason: d.Reason}
		}
	}
	return nil
}
