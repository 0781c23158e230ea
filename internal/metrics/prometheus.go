package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus.
//
// Metrics are created and registered lazily on first use, so constructing
// a collector that is never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	solves        *prometheus.CounterVec
	states        *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	invalidInputs *prometheus.CounterVec
	disagreements prometheus.Counter
	cacheLookups  *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements Collector.
var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "jobline" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "jobline"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.solves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solves_total",
			Help:      "Total successful engine runs by strategy.",
		}, []string{"strategy"})

		p.states = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "states_total",
			Help:      "Total (job, machine) states evaluated by strategy.",
		}, []string{"strategy"})

		p.solveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solve_duration_seconds",
			Help:      "Engine run duration in seconds by strategy.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs .. ~2.6s
		}, []string{"strategy"})

		p.invalidInputs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "invalid_inputs_total",
			Help:      "Total rejected inputs by source (cli, http, file).",
		}, []string{"source"})

		p.disagreements = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "engine_disagreements_total",
			Help:      "Comparisons where tabulation and memoization returned different results.",
		})

		p.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Result cache lookups by outcome (hit, miss).",
		}, []string{"result"})

		p.reg.MustRegister(p.solves)
		p.reg.MustRegister(p.states)
		p.reg.MustRegister(p.solveDuration)
		p.reg.MustRegister(p.invalidInputs)
		p.reg.MustRegister(p.disagreements)
		p.reg.MustRegister(p.cacheLookups)
	})
}

// ObserveSolve records a successful run and the number of states it covered.
func (p *PrometheusCollector) ObserveSolve(strategy string, jobs, machines int, seconds float64) {
	p.ensureRegistered()
	p.solves.WithLabelValues(strategy).Inc()
	p.states.WithLabelValues(strategy).Add(float64(jobs * machines))
	p.solveDuration.WithLabelValues(strategy).Observe(seconds)
}

// IncInvalidInput counts a rejected input.
func (p *PrometheusCollector) IncInvalidInput(source string) {
	p.ensureRegistered()
	p.invalidInputs.WithLabelValues(source).Inc()
}

// IncDisagreement counts an engine disagreement.
func (p *PrometheusCollector) IncDisagreement() {
	p.ensureRegistered()
	p.disagreements.Inc()
}

// IncCache counts a cache lookup outcome.
func (p *PrometheusCollector) IncCache(hit bool) {
	p.ensureRegistered()
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheLookups.WithLabelValues(result).Inc()
}
