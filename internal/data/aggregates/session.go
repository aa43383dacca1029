package aggregates

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/dopebook-backend/internal/ballistics/geometry"
	"github.com/yungbote/dopebook-backend/internal/ballistics/units"
	"github.com/yungbote/dopebook-backend/internal/ballistics/velocity"
	"github.com/yungbote/dopebook-backend/internal/ballistics/weather"
	"github.com/yungbote/dopebook-backend/internal/data/repos"
	types "github.com/yungbote/dopebook-backend/internal/domain"
	domainagg "github.com/yungbote/dopebook-backend/internal/domain/aggregates"
	"github.com/yungbote/dopebook-backend/internal/domain/ownership"
	"github.com/yungbote/dopebook-backend/internal/platform/dbctx"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
)

const (
	sessionTable            = "dope_session"
	defaultFetchConcurrency = 4
	defaultWeatherBuffer    = 30 * time.Minute
)

var tracer = otel.Tracer("github.com/yungbote/dopebook-backend/internal/data/aggregates")

type SessionAggregateDeps struct {
	Base BaseDeps

	Rifles             repos.RifleRepo
	Bullets            repos.BulletRepo
	Cartridges         repos.CartridgeRepo
	ChronographSeries  repos.ChronographSeriesRepo
	ChronographSamples repos.ChronographSampleRepo
	WeatherSeries      repos.WeatherSeriesRepo
	WeatherSamples     repos.WeatherSampleRepo
	Ranges             repos.RangeRepo
	Sessions           repos.SessionRepo
	ShotSamples        repos.ShotSampleRepo

	// Optional. Defaults are built from the repos above.
	Ownership  ownership.Validator
	Catalog    CatalogReader
	Calculator velocity.Calculator
	Matcher    weather.Matcher

	WeatherBuffer    time.Duration
	FetchConcurrency int
}

type sessionAggregate struct {
	deps SessionAggregateDeps
	log  *logger.Logger
}

func NewSessionAggregate(deps SessionAggregateDeps) domainagg.SessionAggregate {
	deps.Base = deps.Base.withDefaults()
	if deps.Ownership == nil {
		deps.Ownership = NewOwnershipValidator(OwnershipValidatorDeps{
			Log:         deps.Base.Log,
			Rifles:      deps.Rifles,
			Chronograph: deps.ChronographSeries,
			Weather:     deps.WeatherSeries,
			Ranges:      deps.Ranges,
			Sessions:    deps.Sessions,
			Bullets:     deps.Bullets,
			Cartridges:  deps.Cartridges,
		})
	}
	if deps.Catalog == nil {
		deps.Catalog = NewRepoCatalog(deps.Cartridges, deps.Bullets)
	}
	if deps.Calculator == nil {
		deps.Calculator = velocity.NewCalculator()
	}
	if deps.Matcher == nil {
		deps.Matcher = weather.NewMatcher()
	}
	if deps.WeatherBuffer <= 0 {
		deps.WeatherBuffer = defaultWeatherBuffer
	}
	if deps.FetchConcurrency < 1 {
		deps.FetchConcurrency = defaultFetchConcurrency
	}
	return &sessionAggregate{
		deps: deps,
		log:  deps.Base.Log.With("aggregate", "SessionAggregate"),
	}
}

func (a *sessionAggregate) Contract() domainagg.Contract {
	return domainagg.SessionAggregateContract
}

// assembly carries the leaves and the phase trace of one composite build.
type assembly struct {
	op    string
	in    domainagg.AssembleInput
	span  trace.Span
	trace []domainagg.AssemblyPhase

	rifle          *types.Rifle
	cartridge      *types.Cartridge
	bullet         *types.Bullet
	series         *types.ChronographSeries
	chronoSamples  []*types.ChronographSample
	weatherSamples []*types.WeatherSample
	rng            *types.Range

	session *types.Session
}

func (asm *assembly) enter(p domainagg.AssemblyPhase) {
	asm.trace = append(asm.trace, p)
	asm.span.AddEvent(string(p))
}

// reject ends the assembly in the rejected phase and tags the error with the phase it failed in.
func (a *sessionAggregate) reject(asm *assembly, phase domainagg.AssemblyPhase, cause error) error {
	code := domainagg.CodeOf(MapError(asm.op, cause))
	asm.enter(domainagg.PhaseRejected)
	asm.span.RecordError(cause)
	asm.span.SetStatus(codes.Error, string(code))
	a.deps.Base.Hooks.IncRejection(asm.op, string(phase), string(code))
	a.log.Debug("assembly rejected", "op", asm.op, "phase", string(phase), "code", string(code), "error", cause)
	return domainagg.NewError(code, asm.op, cause.Error(), &domainagg.RejectionError{Phase: phase, Cause: cause})
}

// assemble runs validating through flattening. It never writes.
// samples, when given, are validated alongside the references so a malformed row is rejected
// before anything is read.
func (a *sessionAggregate) assemble(ctx context.Context, op string, in domainagg.AssembleInput, samples []domainagg.SampleInput) (*assembly, error) {
	ctx, span := tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("rifle_id", in.RifleID.String()),
		attribute.String("cartridge_id", in.CartridgeID.String()),
		attribute.String("chronograph_series_id", in.ChronographSeriesID.String()),
	))
	defer span.End()

	asm := &assembly{op: op, in: in, span: span}
	asm.enter(domainagg.PhasePending)
	dbc := dbctx.Context{Ctx: ctx}

	asm.enter(domainagg.PhaseValidating)
	if err := validateAssembleInput(in); err != nil {
		return asm, a.reject(asm, domainagg.PhaseValidating, err)
	}
	for i, smp := range samples {
		if err := validateSample(smp); err != nil {
			return asm, a.reject(asm, domainagg.PhaseValidating, ValidationError(fmt.Sprintf("sample %d: %v", i, err)))
		}
	}
	if err := requireOwnership(dbc, a.deps.Ownership, in.OwnerID, assembleRefs(in)...); err != nil {
		return asm, a.reject(asm, domainagg.PhaseValidating, err)
	}

	asm.enter(domainagg.PhaseFetching)
	if err := a.fetch(dbc, asm); err != nil {
		return asm, a.reject(asm, domainagg.PhaseFetching, err)
	}

	asm.enter(domainagg.PhaseComputing)
	velocities := make([]float64, 0, len(asm.chronoSamples))
	for _, s := range asm.chronoSamples {
		velocities = append(velocities, s.VelocityMps)
	}
	stats, err := a.deps.Calculator.Compute(velocities)
	if err != nil {
		return asm, a.reject(asm, domainagg.PhaseComputing, err)
	}
	start, end := seriesWindow(asm.series, asm.chronoSamples)

	asm.enter(domainagg.PhaseFlattening)
	b := newCompositeBuilder(in.OwnerID, in.Name, in.Notes).
		rifle(asm.rifle).
		cartridge(asm.cartridge).
		bullet(asm.bullet).
		chronograph(asm.series, start, end, stats)
	if in.WeatherSeriesID != nil {
		red, _ := a.deps.Matcher.Match(start, end, a.deps.WeatherBuffer, weatherReadings(asm.weatherSamples))
		b.weather(*in.WeatherSeriesID, red)
	}
	if asm.rng != nil {
		firing, target := rangePoints(asm.rng)
		b.rangeGeometry(asm.rng, geometry.Solve(firing, target))
	}
	session, err := b.build()
	if err != nil {
		return asm, a.reject(asm, domainagg.PhaseFlattening, err)
	}
	asm.session = session
	return asm, nil
}

func validateAssembleInput(in domainagg.AssembleInput) error {
	switch {
	case in.OwnerID == uuid.Nil:
		return ValidationError("owner_id is required")
	case in.RifleID == uuid.Nil:
		return ValidationError("rifle_id is required")
	case in.CartridgeID == uuid.Nil:
		return ValidationError("cartridge_id is required")
	case in.ChronographSeriesID == uuid.Nil:
		return ValidationError("chronograph_series_id is required")
	case in.WeatherSeriesID != nil && *in.WeatherSeriesID == uuid.Nil:
		return ValidationError("weather_series_id must not be the nil uuid")
	case in.RangeID != nil && *in.RangeID == uuid.Nil:
		return ValidationError("range_id must not be the nil uuid")
	}
	return nil
}

func assembleRefs(in domainagg.AssembleInput) []ownership.Ref {
	refs := []ownership.Ref{
		{Kind: ownership.KindRifle, ID: in.RifleID},
		{Kind: ownership.KindCartridge, ID: in.CartridgeID},
		{Kind: ownership.KindChronographSeries, ID: in.ChronographSeriesID},
	}
	if in.WeatherSeriesID != nil {
		refs = append(refs, ownership.Ref{Kind: ownership.KindWeatherSeries, ID: *in.WeatherSeriesID})
	}
	if in.RangeID != nil {
		refs = append(refs, ownership.Ref{Kind: ownership.KindRange, ID: *in.RangeID})
	}
	return refs
}

// fetch loads every leaf. Outside a transaction the reads fan out; a single tx connection
// cannot serve concurrent statements, so inside one they run in order.
func (a *sessionAggregate) fetch(dbc dbctx.Context, asm *assembly) error {
	in := asm.in
	tasks := []func(dbctx.Context) error{
		func(dbc dbctx.Context) error {
			row, err := a.deps.Rifles.GetByOwnerAndID(dbc, in.OwnerID, in.RifleID)
			if err != nil {
				return err
			}
			asm.rifle = row
			return requireRow(row != nil, ownership.KindRifle, in.RifleID)
		},
		func(dbc dbctx.Context) error {
			return a.fetchCatalog(dbc, asm)
		},
		func(dbc dbctx.Context) error {
			row, err := a.deps.ChronographSeries.GetByOwnerAndID(dbc, in.OwnerID, in.ChronographSeriesID)
			if err != nil {
				return err
			}
			asm.series = row
			return requireRow(row != nil, ownership.KindChronographSeries, in.ChronographSeriesID)
		},
		func(dbc dbctx.Context) error {
			rows, err := a.deps.ChronographSamples.ListBySeriesID(dbc, in.ChronographSeriesID)
			asm.chronoSamples = rows
			return err
		},
	}
	if in.WeatherSeriesID != nil {
		id := *in.WeatherSeriesID
		tasks = append(tasks, func(dbc dbctx.Context) error {
			rows, err := a.deps.WeatherSamples.ListBySeriesID(dbc, id)
			asm.weatherSamples = rows
			return err
		})
	}
	if in.RangeID != nil {
		id := *in.RangeID
		tasks = append(tasks, func(dbc dbctx.Context) error {
			row, err := a.deps.Ranges.GetByOwnerAndID(dbc, in.OwnerID, id)
			if err != nil {
				return err
			}
			asm.rng = row
			return requireRow(row != nil, ownership.KindRange, id)
		})
	}

	if dbc.InTx() {
		for _, task := range tasks {
			if err := task(dbc); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(dbc.Ctx)
	g.SetLimit(a.deps.FetchConcurrency)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			return task(dbctx.Context{Ctx: gctx})
		})
	}
	return g.Wait()
}

// fetchCatalog reads the cartridge and then the bullet it is loaded with. The bullet id is only
// known here, so it is validated here.
func (a *sessionAggregate) fetchCatalog(dbc dbctx.Context, asm *assembly) error {
	c, err := a.deps.Catalog.GetCartridge(dbc, asm.in.CartridgeID)
	if err != nil {
		return err
	}
	if err := requireRow(c != nil, ownership.KindCartridge, asm.in.CartridgeID); err != nil {
		return err
	}
	asm.cartridge = c
	bulletRef := ownership.Ref{Kind: ownership.KindBullet, ID: c.BulletID}
	if err := requireOwnership(dbc, a.deps.Ownership, asm.in.OwnerID, bulletRef); err != nil {
		return err
	}
	b, err := a.deps.Catalog.GetBullet(dbc, c.BulletID)
	if err != nil {
		return err
	}
	asm.bullet = b
	return requireRow(b != nil, ownership.KindBullet, c.BulletID)
}

func requireRow(found bool, kind ownership.Kind, id uuid.UUID) error {
	if found {
		return nil
	}
	return fmt.Errorf("%s %s: %w", kind, id, gorm.ErrRecordNotFound)
}

// seriesWindow copies the series bounds. A zero bound falls back to the earliest or latest
// sample timestamp; samples never widen a recorded bound.
func seriesWindow(series *types.ChronographSeries, samples []*types.ChronographSample) (time.Time, time.Time) {
	start, end := series.StartTime, series.EndTime
	if !start.IsZero() && !end.IsZero() {
		return start.UTC(), end.UTC()
	}
	var first, last time.Time
	for _, s := range samples {
		if first.IsZero() || s.Timestamp.Before(first) {
			first = s.Timestamp
		}
		if last.IsZero() || s.Timestamp.After(last) {
			last = s.Timestamp
		}
	}
	if start.IsZero() {
		start = first
	}
	if end.IsZero() {
		end = last
	}
	return start.UTC(), end.UTC()
}

func (a *sessionAggregate) Assemble(ctx context.Context, in domainagg.AssembleInput) (domainagg.AssembleResult, error) {
	const op = "Dope.Session.Assemble"
	var out domainagg.AssembleResult
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		asm, err := a.assemble(dbc.Ctx, op, in, nil)
		if asm != nil {
			out.Trace = asm.trace
		}
		if err != nil {
			return err
		}
		asm.enter(domainagg.PhaseReturning)
		asm.enter(domainagg.PhaseDone)
		out.Session = asm.session
		out.Trace = asm.trace
		return nil
	})
	return out, err
}

func (a *sessionAggregate) Create(ctx context.Context, in domainagg.CreateSessionInput) (domainagg.CreateSessionResult, error) {
	const op = "Dope.Session.Create"
	var out domainagg.CreateSessionResult
	err := observe(a.deps.Base, op, func() error {
		asm, err := a.assemble(ctx, op, in.AssembleInput, in.Samples)
		if err != nil {
			return err
		}
		asm.enter(domainagg.PhasePersisting)

		var seeds []domainagg.SampleInput
		if in.AutoCopySamples {
			seeds = append(seeds, chronographSeeds(asm.chronoSamples)...)
		}
		seeds = append(seeds, in.Samples...)

		err = a.deps.Base.Runner.InTx(ctx, func(dbc dbctx.Context) error {
			created, err := a.deps.Sessions.Create(dbc, []*types.Session{asm.session})
			if err != nil {
				return err
			}
			session := created[0]
			rows, _, err := planSamples(session, seeds, nil, 0)
			if err != nil {
				return err
			}
			inserted, err := a.deps.ShotSamples.Create(dbc, rows)
			if err != nil {
				return err
			}
			out.Session = session
			out.Samples = inserted
			return nil
		})
		if err != nil {
			out = domainagg.CreateSessionResult{}
			return err
		}
		asm.enter(domainagg.PhaseDone)
		a.log.Info("session created",
			"session_id", out.Session.ID.String(),
			"owner_id", in.OwnerID.String(),
			"samples", len(out.Samples),
		)
		return nil
	})
	return out, err
}

func chronographSeeds(rows []*types.ChronographSample) []domainagg.SampleInput {
	out := make([]domainagg.SampleInput, 0, len(rows))
	for i, r := range rows {
		out = append(out, domainagg.SampleInput{
			SequenceNumber: i + 1,
			Timestamp:      r.Timestamp,
			VelocityMps:    r.VelocityMps,
			Notes:          r.Notes,
		})
	}
	return out
}

func validateSample(s domainagg.SampleInput) error {
	switch {
	case s.Timestamp.IsZero():
		return ValidationError("sample timestamp is required")
	case s.SequenceNumber < 0:
		return ValidationError("sample sequence_number must be >= 0")
	case math.IsNaN(s.VelocityMps) || math.IsInf(s.VelocityMps, 0) || s.VelocityMps <= 0:
		return ValidationError("sample velocity_mps must be a positive number")
	case s.EnvHumidityPct != nil && (*s.EnvHumidityPct < 0 || *s.EnvHumidityPct > 100):
		return ValidationError("sample env_humidity_pct must be within [0,100]")
	}
	return nil
}

// sampleKey is the idempotency key. Timestamps are truncated to the precision postgres keeps.
func sampleKey(ts time.Time) time.Time {
	return ts.UTC().Truncate(time.Microsecond)
}

// planSamples turns inputs into rows for session. Inputs whose timestamp is already in existing,
// or repeats an earlier input, are skipped. A zero sequence number takes the next free one after
// maxSeq and after any explicit number in the batch.
func planSamples(session *types.Session, in []domainagg.SampleInput, existing []time.Time, maxSeq int) ([]*types.ShotSample, int, error) {
	seen := make(map[time.Time]struct{}, len(existing)+len(in))
	for _, ts := range existing {
		seen[sampleKey(ts)] = struct{}{}
	}
	next := maxSeq
	for _, s := range in {
		if s.SequenceNumber > next {
			next = s.SequenceNumber
		}
	}
	usedSeq := map[int]struct{}{}

	rows := make([]*types.ShotSample, 0, len(in))
	skipped := 0
	for _, s := range in {
		key := sampleKey(s.Timestamp)
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}

		seq := s.SequenceNumber
		if seq == 0 {
			next++
			seq = next
		}
		if _, dup := usedSeq[seq]; dup {
			return nil, 0, ValidationError(fmt.Sprintf("duplicate sequence_number %d in batch", seq))
		}
		usedSeq[seq] = struct{}{}
		rows = append(rows, sampleRow(session, seq, key, s))
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SequenceNumber < rows[j].SequenceNumber })
	return rows, skipped, nil
}

func sampleRow(session *types.Session, seq int, ts time.Time, s domainagg.SampleInput) *types.ShotSample {
	row := &types.ShotSample{
		SessionID:              session.ID,
		SequenceNumber:         seq,
		Timestamp:              ts,
		VelocityMps:            s.VelocityMps,
		EnvTemperatureC:        copyFloat(s.EnvTemperatureC),
		EnvHumidityPct:         copyFloat(s.EnvHumidityPct),
		EnvPressureHPa:         copyFloat(s.EnvPressureHPa),
		EnvWindSpeedMps:        copyFloat(s.EnvWindSpeedMps),
		EnvWindDirectionDeg:    copyFloat(s.EnvWindDirectionDeg),
		TargetDistanceM:        copyFloat(s.TargetDistanceM),
		ElevationAdjustmentMil: copyFloat(s.ElevationAdjustmentMil),
		WindageAdjustmentMil:   copyFloat(s.WindageAdjustmentMil),
		BoreCondition:          datatypes.NewJSONType(s.BoreCondition),
		Notes:                  s.Notes,
	}
	if grams := session.BulletWeightGrams; grams > 0 {
		energy := units.KineticEnergyJ(grams, s.VelocityMps)
		momentum := units.MomentumNs(grams, s.VelocityMps)
		row.EnergyJ = &energy
		row.PowerFactorNs = &momentum
	}
	return row
}

// ownedSession validates the session reference and loads it inside dbc.
func (a *sessionAggregate) ownedSession(dbc dbctx.Context, sessionID, ownerID uuid.UUID) (*types.Session, error) {
	if ownerID == uuid.Nil {
		return nil, ValidationError("owner_id is required")
	}
	if sessionID == uuid.Nil {
		return nil, ValidationError("session_id is required")
	}
	ref := ownership.Ref{Kind: ownership.KindSession, ID: sessionID}
	if err := requireOwnership(dbc, a.deps.Ownership, ownerID, ref); err != nil {
		return nil, err
	}
	session, err := a.deps.Sessions.GetByOwnerAndID(dbc, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, requireRow(false, ownership.KindSession, sessionID)
	}
	return session, nil
}

// CreateSample is idempotent on timestamp: a repeat returns the stored sample unchanged.
func (a *sessionAggregate) CreateSample(ctx context.Context, in domainagg.CreateSampleInput) (*types.ShotSample, error) {
	const op = "Dope.Session.CreateSample"
	var out *types.ShotSample
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := validateSample(in.Sample); err != nil {
			return err
		}
		session, err := a.ownedSession(dbc, in.SessionID, in.OwnerID)
		if err != nil {
			return err
		}
		existing, err := a.deps.ShotSamples.ListBySessionID(dbc, session.ID)
		if err != nil {
			return err
		}
		key := sampleKey(in.Sample.Timestamp)
		maxSeq := 0
		for _, row := range existing {
			if sampleKey(row.Timestamp).Equal(key) {
				out = row
				return nil
			}
			if row.SequenceNumber > maxSeq {
				maxSeq = row.SequenceNumber
			}
		}
		rows, _, err := planSamples(session, []domainagg.SampleInput{in.Sample}, nil, maxSeq)
		if err != nil {
			return err
		}
		created, err := a.deps.ShotSamples.Create(dbc, rows)
		if err != nil {
			return err
		}
		out = created[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ImportSamples validates the whole batch before writing anything; any failure rolls back every row.
func (a *sessionAggregate) ImportSamples(ctx context.Context, in domainagg.ImportSamplesInput) (domainagg.ImportSamplesResult, error) {
	const op = "Dope.Session.ImportSamples"
	var out domainagg.ImportSamplesResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		for i, s := range in.Samples {
			if err := validateSample(s); err != nil {
				return ValidationError(fmt.Sprintf("sample %d: %v", i, err))
			}
		}
		session, err := a.ownedSession(dbc, in.SessionID, in.OwnerID)
		if err != nil {
			return err
		}
		existing, err := a.deps.ShotSamples.ListTimestamps(dbc, session.ID)
		if err != nil {
			return err
		}
		maxSeq, err := a.deps.ShotSamples.MaxSequence(dbc, session.ID)
		if err != nil {
			return err
		}
		rows, skipped, err := planSamples(session, in.Samples, existing, maxSeq)
		if err != nil {
			return err
		}
		inserted, err := a.deps.ShotSamples.Create(dbc, rows)
		if err != nil {
			return err
		}
		out = domainagg.ImportSamplesResult{Inserted: inserted, Skipped: skipped}
		return nil
	})
	if err != nil {
		return domainagg.ImportSamplesResult{}, err
	}
	if len(out.Inserted) > 0 || out.Skipped > 0 {
		a.log.Info("samples imported",
			"session_id", in.SessionID.String(),
			"inserted", len(out.Inserted),
			"skipped", out.Skipped,
		)
	}
	return out, nil
}

// Update applies edits under a version check. A changed weather or range reference is
// re-derived against the session window; clearing one drops its derived fields.
func (a *sessionAggregate) Update(ctx context.Context, in domainagg.UpdateSessionInput) (*types.Session, error) {
	const op = "Dope.Session.Update"
	var out *types.Session
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if in.ExpectedVersion < 1 {
			return ValidationError("expected_version must be >= 1")
		}
		if in.ClearWeather && in.WeatherSeriesID != nil {
			return ValidationError("weather_series_id and clear_weather are mutually exclusive")
		}
		if in.ClearRange && in.RangeID != nil {
			return ValidationError("range_id and clear_range are mutually exclusive")
		}
		session, err := a.ownedSession(dbc, in.ID, in.OwnerID)
		if err != nil {
			return err
		}
		var refs []ownership.Ref
		if in.WeatherSeriesID != nil {
			refs = append(refs, ownership.Ref{Kind: ownership.KindWeatherSeries, ID: *in.WeatherSeriesID})
		}
		if in.RangeID != nil {
			refs = append(refs, ownership.Ref{Kind: ownership.KindRange, ID: *in.RangeID})
		}
		if err := requireOwnership(dbc, a.deps.Ownership, in.OwnerID, refs...); err != nil {
			return err
		}
		if err := RequireVersionMatch(session.Version, in.ExpectedVersion); err != nil {
			return err
		}

		updates := map[string]any{}
		if in.Name != nil {
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}

		switch {
		case in.ClearWeather:
			session.ClearWeather()
			weatherUpdates(updates, session)
		case in.WeatherSeriesID != nil:
			rows, err := a.deps.WeatherSamples.ListBySeriesID(dbc, *in.WeatherSeriesID)
			if err != nil {
				return err
			}
			red, _ := a.deps.Matcher.Match(session.StartTime, session.EndTime, a.deps.WeatherBuffer, weatherReadings(rows))
			id := *in.WeatherSeriesID
			session.WeatherSeriesID = &id
			applyWeather(session, red)
			weatherUpdates(updates, session)
		}

		switch {
		case in.ClearRange:
			session.ClearRange()
			rangeUpdates(updates, session)
		case in.RangeID != nil:
			rg, err := a.deps.Ranges.GetByOwnerAndID(dbc, in.OwnerID, *in.RangeID)
			if err != nil {
				return err
			}
			if rg == nil {
				return requireRow(false, ownership.KindRange, *in.RangeID)
			}
			firing, target := rangePoints(rg)
			applyRange(session, rg, geometry.Solve(firing, target))
			rangeUpdates(updates, session)
		}

		if len(updates) == 0 {
			out = session
			return nil
		}
		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, sessionTable, session.ID, in.ExpectedVersion, updates)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "session version changed concurrently"); err != nil {
			return err
		}
		reloaded, err := a.deps.Sessions.GetByID(dbc, session.ID)
		if err != nil {
			return err
		}
		out = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func weatherUpdates(updates map[string]any, s *types.Session) {
	updates["weather_series_id"] = nullableUUID(s.WeatherSeriesID)
	updates["weather_temperature_c"] = nullable(s.WeatherTemperatureC)
	updates["weather_humidity_pct"] = nullable(s.WeatherHumidityPct)
	updates["weather_pressure_hpa"] = nullable(s.WeatherPressureHPa)
	updates["weather_wind_speed_mps"] = nullable(s.WeatherWindSpeedMps)
	updates["weather_wind_gust_mps"] = nullable(s.WeatherWindGustMps)
	updates["weather_wind_direction_deg"] = nullable(s.WeatherWindDirectionDeg)
	updates["weather_sample_count"] = s.WeatherSampleCount
}

func rangeUpdates(updates map[string]any, s *types.Session) {
	updates["range_id"] = nullableUUID(s.RangeID)
	updates["range_name"] = nullableString(s.RangeName)
	updates["latitude"] = nullable(s.Latitude)
	updates["longitude"] = nullable(s.Longitude)
	updates["altitude_m"] = nullable(s.AltitudeM)
	updates["distance_m"] = nullable(s.DistanceM)
	updates["bearing_deg"] = nullable(s.BearingDeg)
	updates["elevation_angle_deg"] = nullable(s.ElevationAngleDeg)
	updates["map_link"] = nullableString(s.MapLink)
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableUUID(v *uuid.UUID) any {
	if v == nil {
		return nil
	}
	return *v
}

func (a *sessionAggregate) Delete(ctx context.Context, sessionID, ownerID uuid.UUID) (bool, error) {
	const op = "Dope.Session.Delete"
	var deleted bool
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if ownerID == uuid.Nil || sessionID == uuid.Nil {
			return ValidationError("session_id and owner_id are required")
		}
		ok, err := a.deps.Sessions.Delete(dbc, ownerID, sessionID)
		if err != nil {
			return err
		}
		deleted = ok
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
