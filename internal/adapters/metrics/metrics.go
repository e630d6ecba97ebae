// Package metrics records build statistics in a private Prometheus registry.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Metrics = (*Recorder)(nil)

const namespace = "forge"

// Outcome label values.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Recorder implements ports.Metrics. Each Recorder owns its registry so that
// one process can build several times without mixing the results.
type Recorder struct {
	registry *prometheus.Registry

	compiles  *prometheus.CounterVec
	links     *prometheus.CounterVec
	durations *prometheus.HistogramVec
	modules   *prometheus.GaugeVec
	cacheHits *prometheus.CounterVec

	mu     sync.Mutex
	states map[string]string
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		compiles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compile_actions_total",
			Help:      "Compile actions run, by module and outcome.",
		}, []string{"module", "outcome"}),
		links: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "link_actions_total",
			Help:      "Link actions run, by module and outcome.",
		}, []string{"module", "outcome"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_duration_seconds",
			Help:      "Wall time of toolchain invocations.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"phase"}),
		modules: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "module_state",
			Help:      "Set to 1 for the final state of each module in its last build.",
		}, []string{"module", "state"}),
		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compile_cache_hits_total",
			Help:      "Sources skipped because they were up to date.",
		}, []string{"module"}),
		states: make(map[string]string),
	}
}

// Registry exposes the collectors, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveCompile implements ports.Metrics.
func (r *Recorder) ObserveCompile(module string, success bool, duration time.Duration) {
	r.compiles.WithLabelValues(module, outcome(success)).Inc()
	r.durations.WithLabelValues("compile").Observe(duration.Seconds())
}

// ObserveLink implements ports.Metrics.
func (r *Recorder) ObserveLink(module string, success bool, duration time.Duration) {
	r.links.WithLabelValues(module, outcome(success)).Inc()
	r.durations.WithLabelValues("link").Observe(duration.Seconds())
}

// ObserveModule implements ports.Metrics. A module keeps only the state of
// its most recent build.
func (r *Recorder) ObserveModule(module, state string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.states[module]; ok && prev != state {
		r.modules.DeleteLabelValues(module, prev)
	}
	r.states[module] = state
	r.modules.WithLabelValues(module, state).Set(1)
}

// ObserveCacheHit implements ports.Metrics.
func (r *Recorder) ObserveCacheHit(module string) {
	r.cacheHits.WithLabelValues(module).Inc()
}

// WriteTextfile writes every collector to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}

func outcome(success bool) string {
	if success {
		return outcomeSuccess
	}
	return outcomeFailure
}
