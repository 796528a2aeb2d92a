package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExposure(t *testing.T) {
	LikesToggled.WithLabelValues("like").Inc()
	LikesIgnored.Inc()
	Refreshes.WithLabelValues("started").Inc()
	LoadMore.WithLabelValues("skipped").Inc()
	ItemsGenerated.Add(8)
	ObserveSince("refresh", time.Now().Add(-500*time.Millisecond))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, m := range []string{
		"mediafeed_likes_toggled_total",
		"mediafeed_likes_ignored_total",
		"mediafeed_refreshes_total",
		"mediafeed_load_more_total",
		"mediafeed_items_generated_total",
		"mediafeed_operation_duration_seconds",
	} {
		assert.Contains(t, body, m)
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartServerDisabled(t *testing.T) {
	assert.Nil(t, StartServer(""))
}
