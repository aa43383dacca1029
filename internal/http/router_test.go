package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/data/aggregates"
	"github.com/yungbote/dopebook-backend/internal/data/repos"
	repotest "github.com/yungbote/dopebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/dopebook-backend/internal/domain"
	httpH "github.com/yungbote/dopebook-backend/internal/http/handlers"
	httpMW "github.com/yungbote/dopebook-backend/internal/http/middleware"
	"github.com/yungbote/dopebook-backend/internal/services"
)

var chronoStart = time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

type apiFixture struct {
	router *gin.Engine
	auth   services.AuthService

	owner     uuid.UUID
	rifle     *types.Rifle
	cartridge *types.Cartridge
	series    *types.ChronographSeries
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	db := repotest.DB(t)
	log := repotest.Logger(t)
	set := repos.NewSet(db, log)

	f := &apiFixture{owner: uuid.New()}
	f.rifle = repotest.SeedRifle(t, ctx, db, f.owner, "R1")
	bullet := repotest.SeedBullet(t, ctx, db, 175, "7.62")
	f.cartridge = repotest.SeedCartridge(t, ctx, db, bullet.ID)
	f.series, _ = repotest.SeedChronograph(t, ctx, db, f.owner, chronoStart, 790, 792, 791)

	agg := aggregates.NewSessionAggregate(aggregates.SessionAggregateDeps{
		Base:               aggregates.BaseDeps{DB: db, Log: log},
		Rifles:             set.Rifles,
		Bullets:            set.Bullets,
		Cartridges:         set.Cartridges,
		ChronographSeries:  set.ChronographSeries,
		ChronographSamples: set.ChronographSamples,
		WeatherSeries:      set.WeatherSeries,
		WeatherSamples:     set.WeatherSamples,
		Ranges:             set.Ranges,
		Sessions:           set.Sessions,
		ShotSamples:        set.ShotSamples,
	})
	f.auth = services.NewAuthService(log, "router-test", time.Minute)
	f.router = NewRouter(RouterConfig{
		Log:            log,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, f.auth),
		SessionHandler: httpH.NewSessionHandler(log, services.NewSessionService(log, agg, set.Sessions, set.ShotSamples)),
		HealthHandler:  httpH.NewHealthHandler(db),
	})
	return f
}

func (f *apiFixture) do(t *testing.T, owner uuid.UUID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if owner != uuid.Nil {
		token, err := f.auth.IssueToken(owner)
		if err != nil {
			t.Fatalf("IssueToken: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

type createResponse struct {
	Session struct {
		Session      types.Session `json:"session"`
		BulletWeight struct {
			Grains float64 `json:"grains"`
		} `json:"bullet_weight"`
	} `json:"session"`
	Samples []types.ShotSample `json:"samples"`
}

func (f *apiFixture) createSession(t *testing.T) types.Session {
	t.Helper()
	rec := f.do(t, f.owner, http.MethodPost, "/api/sessions", map[string]any{
		"name":                  "zero",
		"rifle_id":              f.rifle.ID,
		"cartridge_id":          f.cartridge.ID,
		"chronograph_series_id": f.series.ID,
		"auto_copy_samples":     true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var out createResponse
	decode(t, rec, &out)
	if len(out.Samples) != 3 {
		t.Fatalf("auto-copied samples: want=3 got=%d", len(out.Samples))
	}
	if out.Session.BulletWeight.Grains < 174.9 || out.Session.BulletWeight.Grains > 175.1 {
		t.Fatalf("grains: %f", out.Session.BulletWeight.Grains)
	}
	return out.Session.Session
}

func TestRouterRequiresAuth(t *testing.T) {
	f := newAPIFixture(t)
	if rec := f.do(t, uuid.Nil, http.MethodGet, "/api/sessions", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got=%d want=401", rec.Code)
	}
	if rec := f.do(t, uuid.Nil, http.MethodGet, "/healthcheck", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: got=%d", rec.Code)
	}
}

func TestRouterSessionLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	s := f.createSession(t)

	rec := f.do(t, f.owner, http.MethodGet, "/api/sessions/"+s.ID.String()+"?units=imperial", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var view struct {
		Session types.Session `json:"session"`
		Display struct {
			System      string `json:"system"`
			VelocityAvg struct {
				Value float64 `json:"value"`
				Unit  string  `json:"unit"`
			} `json:"velocity_avg"`
		} `json:"display"`
	}
	decode(t, rec, &view)
	if view.Display.System != "imperial" || view.Display.VelocityAvg.Unit != "ft/s" {
		t.Fatalf("display: %+v", view.Display)
	}
	if v := view.Display.VelocityAvg.Value; v < 2595 || v > 2596 {
		t.Fatalf("791 m/s should display as ~2595.1 ft/s, got %f", v)
	}
	if view.Session.VelocityAvgMps != 791 {
		t.Fatalf("stored value stays canonical: %f", view.Session.VelocityAvgMps)
	}

	rec = f.do(t, f.owner, http.MethodGet, "/api/sessions?grains=175&rifle_id="+f.rifle.ID.String(), nil)
	var list struct {
		Sessions []struct {
			Session types.Session `json:"session"`
		} `json:"sessions"`
	}
	decode(t, rec, &list)
	if len(list.Sessions) != 1 || list.Sessions[0].Session.ID != s.ID {
		t.Fatalf("filter by grains: %s", rec.Body.String())
	}
	rec = f.do(t, f.owner, http.MethodGet, "/api/sessions?grains=155", nil)
	decode(t, rec, &list)
	if len(list.Sessions) != 0 {
		t.Fatalf("155 gr should not match a 175 gr session")
	}

	rec = f.do(t, f.owner, http.MethodPatch, "/api/sessions/"+s.ID.String(), map[string]any{
		"expected_version": s.Version,
		"notes":            "moved to 300",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status=%d body=%s", rec.Code, rec.Body.String())
	}
	rec = f.do(t, f.owner, http.MethodPatch, "/api/sessions/"+s.ID.String(), map[string]any{
		"expected_version": s.Version,
		"notes":            "stale",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("stale patch: status=%d body=%s", rec.Code, rec.Body.String())
	}

	if rec = f.do(t, f.owner, http.MethodDelete, "/api/sessions/"+s.ID.String(), nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status=%d", rec.Code)
	}
	if rec = f.do(t, f.owner, http.MethodGet, "/api/sessions/"+s.ID.String(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status=%d", rec.Code)
	}
}

func TestRouterImportImperialSamples(t *testing.T) {
	f := newAPIFixture(t)
	s := f.createSession(t)

	ts := chronoStart.Add(time.Minute).Format(time.RFC3339)
	body := map[string]any{"samples": []map[string]any{
		{"timestamp": ts, "velocity": 2600, "temperature": 59},
	}}
	path := "/api/sessions/" + s.ID.String() + "/samples/import?units=imperial"
	rec := f.do(t, f.owner, http.MethodPost, path, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Inserted []types.ShotSample `json:"inserted"`
		Skipped  int                `json:"skipped"`
	}
	decode(t, rec, &out)
	if len(out.Inserted) != 1 || out.Skipped != 0 {
		t.Fatalf("first import: %s", rec.Body.String())
	}
	got := out.Inserted[0]
	if got.VelocityMps < 792.47 || got.VelocityMps > 792.49 {
		t.Fatalf("velocity should be normalized to m/s: %f", got.VelocityMps)
	}
	if got.EnvTemperatureC == nil || *got.EnvTemperatureC < 14.99 || *got.EnvTemperatureC > 15.01 {
		t.Fatalf("temperature should be normalized to C: %v", got.EnvTemperatureC)
	}
	if got.SequenceNumber != 4 {
		t.Fatalf("sequence continues after auto-copied samples: %d", got.SequenceNumber)
	}

	rec = f.do(t, f.owner, http.MethodPost, path, body)
	decode(t, rec, &out)
	if len(out.Inserted) != 0 || out.Skipped != 1 {
		t.Fatalf("re-import should skip: %s", rec.Body.String())
	}

	rec = f.do(t, f.owner, http.MethodGet, "/api/sessions/"+s.ID.String()+"/samples", nil)
	var samples struct {
		Samples []types.ShotSample `json:"samples"`
	}
	decode(t, rec, &samples)
	if len(samples.Samples) != 4 {
		t.Fatalf("samples: want=4 got=%d", len(samples.Samples))
	}
}

func TestRouterOwnerIsolation(t *testing.T) {
	f := newAPIFixture(t)
	s := f.createSession(t)
	stranger := uuid.New()

	if rec := f.do(t, stranger, http.MethodGet, "/api/sessions/"+s.ID.String(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("foreign get: status=%d", rec.Code)
	}
	if rec := f.do(t, stranger, http.MethodGet, "/api/sessions/"+s.ID.String()+"/samples", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("foreign samples: status=%d", rec.Code)
	}
	if rec := f.do(t, stranger, http.MethodDelete, "/api/sessions/"+s.ID.String(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: status=%d", rec.Code)
	}
	rec := f.do(t, stranger, http.MethodPatch, "/api/sessions/"+s.ID.String(), map[string]any{
		"expected_version": s.Version,
		"name":             "hijacked",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign patch: status=%d body=%s", rec.Code, rec.Body.String())
	}
	rec = f.do(t, f.owner, http.MethodGet, "/api/sessions/"+s.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner get: status=%d", rec.Code)
	}
	var got struct {
		Session types.Session `json:"session"`
	}
	decode(t, rec, &got)
	if got.Session.Version != s.Version || got.Session.Name != s.Name {
		t.Fatalf("foreign patch leaked: version=%d name=%q", got.Session.Version, got.Session.Name)
	}
	rec = f.do(t, stranger, http.MethodPost, "/api/sessions/preview", map[string]any{
		"rifle_id":              f.rifle.ID,
		"cartridge_id":          f.cartridge.ID,
		"chronograph_series_id": f.series.ID,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign preview: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &env)
	if env.Error.Code != "ownership_violation" {
		t.Fatalf("error code: %q", env.Error.Code)
	}
	if rec := f.do(t, f.owner, http.MethodGet, "/api/sessions/not-a-uuid", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status=%d", rec.Code)
	}
}
