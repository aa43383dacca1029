package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/dopebook-backend/internal/domain"
	domainagg "github.com/yungbote/dopebook-backend/internal/domain/aggregates"
	"github.com/yungbote/dopebook-backend/internal/http/response"
	"github.com/yungbote/dopebook-backend/internal/platform/ctxutil"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
	"github.com/yungbote/dopebook-backend/internal/services"
)

type SessionHandler struct {
	log      *logger.Logger
	sessions services.SessionService
}

func NewSessionHandler(log *logger.Logger, sessions services.SessionService) *SessionHandler {
	return &SessionHandler{log: log.With("handler", "SessionHandler"), sessions: sessions}
}

// POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sys := unitsParam(c)
	res, err := h.sessions.Create(c.Request.Context(), domainagg.CreateSessionInput{
		AssembleInput:   req.input(ownerID),
		AutoCopySamples: req.AutoCopySamples,
		Samples:         sampleInputs(req.Samples, sys),
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	raw := c.Query("units")
	response.RespondCreated(c, gin.H{
		"session": viewSession(res.Session, raw),
		"samples": viewSamples(res.Samples, raw),
	})
}

// POST /api/sessions/preview
// Runs assembly without persisting anything.
func (h *SessionHandler) PreviewSession(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req assembleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.sessions.Preview(c.Request.Context(), req.input(ownerID))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"session": viewSession(res.Session, c.Query("units")),
		"trace":   res.Trace,
	})
}

// GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s, err := h.sessions.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if s == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", errSessionNotFound)
		return
	}
	response.RespondOK(c, viewSession(s, c.Query("units")))
}

// GET /api/sessions
// query: rifle_id, cartridge_id, bullet_id, range_id, from, to (RFC3339), name, grains, grains_tolerance, units
func (h *SessionHandler) ListSessions(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	f, err := parseFilter(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	list, err := h.sessions.Filter(c.Request.Context(), ownerID, f)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	raw := c.Query("units")
	out := make([]sessionView, 0, len(list))
	for _, s := range list {
		out = append(out, viewSession(s, raw))
	}
	response.RespondOK(c, gin.H{"sessions": out})
}

// PATCH /api/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s, err := h.sessions.Update(c.Request.Context(), domainagg.UpdateSessionInput{
		ID:              id,
		OwnerID:         ownerID,
		ExpectedVersion: req.ExpectedVersion,
		Name:            req.Name,
		Notes:           req.Notes,
		WeatherSeriesID: req.WeatherSeriesID,
		RangeID:         req.RangeID,
		ClearWeather:    req.ClearWeather,
		ClearRange:      req.ClearRange,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, viewSession(s, c.Query("units")))
}

// DELETE /api/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.sessions.Delete(c.Request.Context(), id, ownerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if !deleted {
		response.RespondError(c, http.StatusNotFound, "not_found", errSessionNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/sessions/:id/samples
func (h *SessionHandler) ListSamples(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	samples, err := h.sessions.ListSamples(c.Request.Context(), id, ownerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"samples": viewSamples(samples, c.Query("units"))})
}

// POST /api/sessions/:id/samples
func (h *SessionHandler) CreateSample(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req sampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sample, err := h.sessions.CreateSample(c.Request.Context(), id, ownerID, req.input(unitsParam(c)))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"sample": viewSamples([]*types.ShotSample{sample}, c.Query("units"))[0]})
}

// POST /api/sessions/:id/samples/import?units=imperial
// body: { "samples": [ ... ] }. All rows are inserted or none are.
func (h *SessionHandler) ImportSamples(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Samples []sampleRequest `json:"samples"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.sessions.ImportSamples(c.Request.Context(), id, ownerID, sampleInputs(req.Samples, unitsParam(c)))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	h.log.Info("samples imported", "session_id", id, "inserted", len(res.Inserted), "skipped", res.Skipped)
	response.RespondOK(c, gin.H{
		"inserted": viewSamples(res.Inserted, c.Query("units")),
		"skipped":  res.Skipped,
	})
}

func requireOwner(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.OwnerID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errMissingOwner)
		return uuid.Nil, false
	}
	return rd.OwnerID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errBadID)
		return uuid.Nil, false
	}
	return id, true
}

func parseFilter(c *gin.Context) (types.SessionFilter, error) {
	var f types.SessionFilter
	var err error
	if f.RifleID, err = optionalUUID(c, "rifle_id"); err != nil {
		return f, err
	}
	if f.CartridgeID, err = optionalUUID(c, "cartridge_id"); err != nil {
		return f, err
	}
	if f.BulletID, err = optionalUUID(c, "bullet_id"); err != nil {
		return f, err
	}
	if f.RangeID, err = optionalUUID(c, "range_id"); err != nil {
		return f, err
	}
	if f.From, err = optionalTime(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = optionalTime(c, "to"); err != nil {
		return f, err
	}
	f.NameContains = strings.TrimSpace(c.Query("name"))
	if raw := strings.TrimSpace(c.Query("grains")); raw != "" {
		grains, perr := strconv.ParseFloat(raw, 64)
		if perr != nil || grains <= 0 {
			return f, errBadQuery("grains")
		}
		f.BulletWeightGrains = &grains
	}
	if raw := strings.TrimSpace(c.Query("grains_tolerance")); raw != "" {
		tol, perr := strconv.ParseFloat(raw, 64)
		if perr != nil || tol < 0 {
			return f, errBadQuery("grains_tolerance")
		}
		f.GrainsTolerance = tol
	}
	return f, nil
}

func optionalUUID(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errBadQuery(key)
	}
	return &id, nil
}

func optionalTime(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errBadQuery(key)
	}
	return &ts, nil
}
