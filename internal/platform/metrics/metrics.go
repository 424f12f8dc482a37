package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts progress activity. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	registry      *prometheus.Registry
	sessions      *prometheus.CounterVec
	minutes       *prometheus.CounterVec
	storeFailures *prometheus.CounterVec
	loadFallbacks *prometheus.CounterVec
}

func NewRecorder(registry *prometheus.Registry) *Recorder {
	if registry == nil {
		return nil
	}
	r := &Recorder{
		registry: registry,
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "focusdash_sessions_recorded_total",
				Help: "Total number of session events folded into progress by kind",
			},
			[]string{"kind"},
		),
		minutes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "focusdash_minutes_recorded_total",
				Help: "Total minutes (or tasks) recorded by kind",
			},
			[]string{"kind"},
		),
		storeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "focusdash_store_failures_total",
				Help: "Total number of failed persistence operations by operation",
			},
			[]string{"op"},
		),
		loadFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "focusdash_load_fallbacks_total",
				Help: "Total number of persisted records replaced by defaults on load",
			},
			[]string{"key"},
		),
	}
	registry.MustRegister(r.sessions, r.minutes, r.storeFailures, r.loadFallbacks)
	return r
}

func (r *Recorder) SessionRecorded(kind string, amount int) {
	if r == nil {
		return
	}
	r.sessions.WithLabelValues(kind).Inc()
	r.minutes.WithLabelValues(kind).Add(float64(amount))
}

func (r *Recorder) StoreFailed(op string) {
	if r == nil {
		return
	}
	r.storeFailures.WithLabelValues(op).Inc()
}

func (r *Recorder) LoadFellBack(key string) {
	if r == nil {
		return
	}
	r.loadFallbacks.WithLabelValues(key).Inc()
}

// Handler exposes the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
