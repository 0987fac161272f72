package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/collections/:collection/items", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	return r
}

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	r := newRouter()

	for _, path := range []string{"/collections/books/items", "/collections/audios/items"} {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/collections/:collection/items", "200"))
	if got < 2 {
		t.Errorf("expected at least 2 requests recorded for route template, got %f", got)
	}

	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_UnknownRoute(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/nowhere", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404"))
	if got < 1 {
		t.Errorf("expected unmatched route to be recorded as unknown, got %f", got)
	}
}

func TestQueryCounters(t *testing.T) {
	before := testutil.ToFloat64(queryEvaluations.WithLabelValues("metrics_test", "match"))
	ObserveQueryEvaluations("metrics_test", 3, 0)
	after := testutil.ToFloat64(queryEvaluations.WithLabelValues("metrics_test", "match"))
	if after-before != 3 {
		t.Errorf("expected 3 matches recorded, got %f", after-before)
	}

	RecordQueryFailure("metrics_test")
	if v := testutil.ToFloat64(queryFailures.WithLabelValues("metrics_test")); v != 1 {
		t.Errorf("expected 1 failure, got %f", v)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	ObserveQueryEvaluations("metrics_handler", 1, 1)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if !strings.Contains(rr.Body.String(), "library_query_evaluations_total") {
		t.Error("expected query evaluation counter in metrics output")
	}
}
