// Package metrics records solver activity for the jobline runner.
package metrics

// Collector receives solver events. Implementations must be safe for
// concurrent use.
type Collector interface {
	// ObserveSolve records one successful engine run over jobs×machines states.
	ObserveSolve(strategy string, jobs, machines int, seconds float64)

	// IncInvalidInput counts a rejected input by origin (cli, http, file).
	IncInvalidInput(source string)

	// IncDisagreement counts comparisons where the engines did not agree.
	IncDisagreement()

	// IncCache counts a cache lookup; hit reports whether it was served from cache.
	IncCache(hit bool)
}

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for tests or when no registry is wanted.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements Collector.
var _ Collector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// ObserveSolve discards the solve observation.
func (n *NopMetrics) ObserveSolve(_ string, _, _ int, _ float64) {}

// IncInvalidInput discards the invalid input counter.
func (n *NopMetrics) IncInvalidInput(_ string) {}

// IncDisagreement discards the disagreement counter.
func (n *NopMetrics) IncDisagreement() {}

// IncCache discards the cache lookup counter.
func (n *NopMetrics) IncCache(_ bool) {}
