package observability

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAggregateMetrics(t *testing.T) {
	m := NewMetrics()
	m.ObserveAggregateOperation("Dope.Session.Create", "success", 5*time.Millisecond)
	m.ObserveAggregateOperation("Dope.Session.Create", "success", 7*time.Millisecond)
	m.IncAggregateConflict("Dope.Session.Update")
	m.IncAssemblyRejection("validating", "ownership_violation")

	if got := testutil.ToFloat64(m.aggregateOps.WithLabelValues("Dope.Session.Create", "success")); got != 2 {
		t.Fatalf("operations: want=2 got=%v", got)
	}
	if got := testutil.ToFloat64(m.aggregateConflicts.WithLabelValues("Dope.Session.Update")); got != 1 {
		t.Fatalf("conflicts: want=1 got=%v", got)
	}
	if got := testutil.ToFloat64(m.assemblyRejections.WithLabelValues("validating", "ownership_violation")); got != 1 {
		t.Fatalf("rejections: want=1 got=%v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/sessions", 200, time.Millisecond)
	m.IncCatalogCache("bullet", "hit")
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 503 {
		t.Fatalf("nil handler: want=503 got=%d", rec.Code)
	}
}

func TestHandlerExposesAPIMetrics(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/sessions/:id", 404, 3*time.Millisecond)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `dope_api_requests_total{method="GET",route="/api/sessions/:id",status="404"} 1`) {
		t.Fatalf("exposition missing api counter:\n%s", body)
	}
}
