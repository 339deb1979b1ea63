package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/events/{id}", "404"))
	RecordHTTPRequest("GET", "/events/{id}", 404, 3*time.Millisecond, 120)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/events/{id}", "404"))

	assert.Equal(t, before+1, after)
}

func TestRecordListing(t *testing.T) {
	pages := listingPagesTotal.WithLabelValues("events", "all")
	empty := listingEmptyPagesTotal.WithLabelValues("events")
	p0, e0 := testutil.ToFloat64(pages), testutil.ToFloat64(empty)

	RecordListing("events", "", 3)
	RecordListing("events", "", 0)

	assert.Equal(t, p0+2, testutil.ToFloat64(pages))
	assert.Equal(t, e0+1, testutil.ToFloat64(empty))
}

func TestSetDependencyHealth(t *testing.T) {
	SetDependencyHealth("postgres", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(dependencyHealth.WithLabelValues("postgres")))

	SetDependencyHealth("postgres", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(dependencyHealth.WithLabelValues("postgres")))
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	RecordListing("organized_by", "", 1)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "events_listing_pages_total")
}
