package metrics

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PromRecorder implements Recorder on a dedicated Prometheus registry.
type PromRecorder struct {
	registry         *prometheus.Registry
	backendCalls     *prometheus.CounterVec
	backendSeconds   *prometheus.HistogramVec
	retrievalSeconds *prometheus.HistogramVec
	comparisons      *prometheus.CounterVec
}

// NewPromRecorder creates a recorder with all collectors registered.
func NewPromRecorder() *PromRecorder {
	reg := prometheus.NewRegistry()
	r := &PromRecorder{
		registry: reg,
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ragduel_backend_calls_total",
			Help: "Generation backend calls by backend and outcome.",
		}, []string{"backend", "outcome"}),
		backendSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ragduel_backend_seconds",
			Help:    "Generation backend call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "outcome"}),
		retrievalSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ragduel_retrieval_seconds",
			Help:    "Retrieval latency in seconds by strategy.",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"strategy"}),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ragduel_comparisons_total",
			Help: "Completed comparison runs, split by degraded generation.",
		}, []string{"degraded"}),
	}
	reg.MustRegister(r.backendCalls, r.backendSeconds, r.retrievalSeconds, r.comparisons)
	return r
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

func (r *PromRecorder) IncBackendCall(backend string, ok bool) {
	r.backendCalls.WithLabelValues(backend, outcome(ok)).Inc()
}

func (r *PromRecorder) ObserveBackendSeconds(backend string, ok bool, seconds float64) {
	r.backendSeconds.WithLabelValues(backend, outcome(ok)).Observe(seconds)
}

func (r *PromRecorder) ObserveRetrievalSeconds(strategy string, seconds float64) {
	r.retrievalSeconds.WithLabelValues(strategy).Observe(seconds)
}

func (r *PromRecorder) IncComparison(degraded bool) {
	r.comparisons.WithLabelValues(strconv.FormatBool(degraded)).Inc()
}

// Serve exposes /metrics and /healthz on addr. It blocks, so callers run it
// in a goroutine.
func (r *PromRecorder) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// InitFromEnv installs a Prometheus recorder and serves it when
// RAGDUEL_METRICS_ADDR is set. Unset means metrics stay no-op.
func InitFromEnv() {
	addr := os.Getenv("RAGDUEL_METRICS_ADDR")
	if addr == "" {
		return
	}
	rec := NewPromRecorder()
	SetRecorder(rec)
	go func() {
		slog.Info("metrics: serving", "addr", addr)
		if err := rec.Serve(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics: server stopped", "error", err)
		}
	}()
}
