package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/platform/ctxutil"
	"github.com/yungbote/dopebook-backend/internal/platform/logger"
	"github.com/yungbote/dopebook-backend/internal/services"
)

func newAuthRouter(t *testing.T) (*gin.Engine, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth := services.NewAuthService(logger.Nop(), "test-secret", time.Minute)
	am := NewAuthMiddleware(logger.Nop(), auth)

	r := gin.New()
	r.GET("/api/sessions", am.RequireAuth(), func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.String(http.StatusOK, rd.OwnerID.String())
	})
	return r, auth
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()
	r, auth := newAuthRouter(t)
	owner := uuid.New()
	token, err := auth.IssueToken(owner)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	other := services.NewAuthService(logger.Nop(), "other-secret", time.Minute)
	forged, err := other.IssueToken(owner)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{name: "missing", status: http.StatusUnauthorized},
		{name: "bearer", header: "Bearer " + token, status: http.StatusOK},
		{name: "query", query: "?token=" + token, status: http.StatusOK},
		{name: "wrong secret", header: "Bearer " + forged, status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer nope", status: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/sessions"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.status == http.StatusOK && rec.Body.String() != owner.String() {
				t.Fatalf("owner: got=%s want=%s", rec.Body.String(), owner)
			}
		})
	}
}
