package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	LikesToggled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mediafeed_likes_toggled_total",
		Help: "Like toggles applied, by direction (like|unlike)",
	}, []string{"direction"})
	LikesIgnored = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mediafeed_likes_ignored_total",
		Help: "Like toggles dropped because the index was out of range",
	})
	Refreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mediafeed_refreshes_total",
		Help: "Refresh requests, by outcome (started|restarted|coalesced|completed)",
	}, []string{"outcome"})
	LoadMore = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mediafeed_load_more_total",
		Help: "Load-more requests, by outcome (started|skipped|completed)",
	}, []string{"outcome"})
	ItemsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mediafeed_items_generated_total",
		Help: "Feed items produced by the generator",
	})
	OperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mediafeed_operation_duration_seconds",
		Help:    "Time from request to completion for deferred operations",
		Buckets: []float64{.05, .1, .25, .3, .5, .75, 1, 2.5},
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(LikesToggled, LikesIgnored, Refreshes, LoadMore, ItemsGenerated, OperationDuration)
}

// Handler serves /metrics and /health.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return mux
}

// StartServer serves Handler on addr in the background. An empty addr
// disables the server.
func StartServer(addr string) *http.Server {
	if addr == "" {
		return nil
	}
	srv := &http.Server{Addr: addr, Handler: Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).WithField("addr", addr).Error("Metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("Serving metrics")
	return srv
}

// ObserveSince records how long op took since start.
func ObserveSince(op string, start time.Time) {
	OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
