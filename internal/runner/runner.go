// Package runner executes assignment instances end to end: validation,
// both engines, cross-checks, caching, logging and metrics.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/katalvlaran/jobline/assign"
	"github.com/katalvlaran/jobline/instance"
	"github.com/katalvlaran/jobline/internal/logging"
	"github.com/katalvlaran/jobline/internal/metrics"
)

var (
	// ErrDisagreement is returned when tabulation and memoization differ.
	ErrDisagreement = errors.New("runner: engines disagree")

	// ErrCostMismatch is returned when re-pricing the optimal path does not
	// reproduce the reported minimum.
	ErrCostMismatch = errors.New("runner: path cost does not match minimum")
)

// DefaultCacheLimit bounds the number of cached comparisons.
const DefaultCacheLimit = 1024

// Runner solves instances. It is safe for concurrent use.
type Runner struct {
	logger  *slog.Logger
	metrics metrics.Collector
	cache   *xsync.Map[uint64, assign.Comparison]
	limit   int
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics collector. A nil collector is ignored.
func WithMetrics(c metrics.Collector) Option {
	return func(r *Runner) {
		if c != nil {
			r.metrics = c
		}
	}
}

// WithCacheLimit bounds the result cache; 0 disables caching.
func WithCacheLimit(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.limit = n
		}
	}
}

// New creates a Runner with a discarding logger, no-op metrics and
// DefaultCacheLimit unless overridden.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger:  logging.Discard(),
		metrics: metrics.NewNop(),
		cache:   xsync.NewMap[uint64, assign.Comparison](),
		limit:   DefaultCacheLimit,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RunOptions tunes a single Run.
type RunOptions struct {
	// Source labels invalid-input metrics (cli, http, file). Defaults to "cli".
	Source string

	// Trace, when set, receives every candidate relaxation of both engines.
	// Traced runs never read or fill the cache.
	Trace func(assign.Relaxation)
}

// Report is the outcome of one Run.
type Report struct {
	RunID         string            `json:"runId"`
	Instance      string            `json:"instance"`
	Jobs          int               `json:"jobs"`
	Machines      int               `json:"machines"`
	Fingerprint   string            `json:"fingerprint"`
	Comparison    assign.Comparison `json:"comparison"`
	PathCost      float64           `json:"pathCost"`
	Expected      *float64          `json:"expected,omitempty"`
	ExpectedMatch bool              `json:"expectedMatch"`
	Cached        bool              `json:"cached"`
	Elapsed       time.Duration     `json:"elapsedNs"`
}

// MinTime returns the tabulated minimum, the authoritative answer.
func (r Report) MinTime() float64 { return r.Comparison.Tabulated.MinTime }

// Path returns the tabulated optimal path.
func (r Report) Path() []int { return r.Comparison.Tabulated.OptimalPath }

// Run validates inst, runs both engines, re-prices the optimal path and
// checks it against inst.Expected.
//
// A Report is returned alongside ErrDisagreement or ErrCostMismatch so the
// caller can still print what was computed. An unmet expectation is logged,
// not returned as an error.
func (r *Runner) Run(ctx context.Context, inst *instance.Instance, ro RunOptions) (Report, error) {
	if ro.Source == "" {
		ro.Source = "cli"
	}
	if err := inst.Validate(); err != nil {
		r.metrics.IncInvalidInput(ro.Source)
		r.logger.Warn("instance rejected", "instance", inst.Name, "source", ro.Source, "error", err)

		return Report{}, err
	}

	start := time.Now()
	rep := Report{
		RunID:       uuid.NewString(),
		Instance:    inst.Name,
		Jobs:        inst.Jobs(),
		Machines:    inst.Machines(),
		Fingerprint: fmt.Sprintf("%016x", inst.Fingerprint()),
		Expected:    inst.Expected,
	}
	log := r.logger.With("run_id", rep.RunID, "instance", inst.Name)

	cmp, cached, err := r.compare(ctx, inst, ro.Trace)
	if err != nil {
		log.Error("solve failed", "error", err)

		return Report{}, err
	}
	rep.Comparison = cmp
	rep.Cached = cached

	rep.PathCost, err = assign.PathCost(inst.ProcessingTime, inst.TransitionCost, rep.Path())
	if err != nil {
		return Report{}, err
	}
	if inst.Expected != nil {
		rep.ExpectedMatch = *inst.Expected == rep.MinTime()
	}
	rep.Elapsed = time.Since(start)

	log.Info("solve finished",
		"jobs", rep.Jobs,
		"machines", rep.Machines,
		"min_time", rep.MinTime(),
		"path", rep.Path(),
		"cached", rep.Cached,
		"elapsed", rep.Elapsed,
	)

	switch {
	case !cmp.Agree():
		r.metrics.IncDisagreement()
		log.Error("engines disagree",
			"tabulated", cmp.Tabulated.MinTime,
			"memoized", cmp.Memoized.MinTime,
			"same_path", cmp.SamePath,
		)

		return rep, fmt.Errorf("%w on %q", ErrDisagreement, inst.Name)
	case rep.PathCost != rep.MinTime():
		log.Error("path cost mismatch", "path_cost", rep.PathCost, "min_time", rep.MinTime())

		return rep, fmt.Errorf("%w on %q: %g != %g", ErrCostMismatch, inst.Name, rep.PathCost, rep.MinTime())
	}

	if inst.Expected != nil && !rep.ExpectedMatch {
		log.Warn("minimum differs from expectation", "expected", *inst.Expected, "actual", rep.MinTime())
	}

	return rep, nil
}

// compare serves the comparison from cache when possible.
func (r *Runner) compare(ctx context.Context, inst *instance.Instance, trace func(assign.Relaxation)) (assign.Comparison, bool, error) {
	useCache := trace == nil && r.limit > 0
	key := inst.Fingerprint()
	if useCache {
		if cmp, ok := r.cache.Load(key); ok {
			r.metrics.IncCache(true)

			return cloneComparison(cmp), true, nil
		}
		r.metrics.IncCache(false)
	}

	opts := []assign.Option{assign.WithContext(ctx), assign.WithOnRelax(trace)}
	n, m := inst.Jobs(), inst.Machines()

	tab, err := r.timed(assign.Tabulation, n, m, func() (assign.Result, error) {
		return assign.Tabulated(n, m, inst.ProcessingTime, inst.TransitionCost, opts...)
	})
	if err != nil {
		return assign.Comparison{}, false, err
	}
	memo, err := r.timed(assign.Memoization, n, m, func() (assign.Result, error) {
		return assign.Memoized(n, m, inst.ProcessingTime, inst.TransitionCost, opts...)
	})
	if err != nil {
		return assign.Comparison{}, false, err
	}

	cmp := assign.Comparison{
		Tabulated:   tab,
		Memoized:    memo,
		SameMinTime: tab.MinTime == memo.MinTime,
		SamePath:    slices.Equal(tab.OptimalPath, memo.OptimalPath),
	}
	if useCache && cmp.Agree() && r.cache.Size() < r.limit {
		r.cache.Store(key, cloneComparison(cmp))
	}

	return cmp, false, nil
}

// Solve runs a single engine, as used by the HTTP façade. Cached
// comparisons answer the request without recomputation.
func (r *Runner) Solve(ctx context.Context, inst *instance.Instance, strategy assign.Strategy, source string) (assign.Result, error) {
	if source == "" {
		source = "cli"
	}
	if strategy != assign.Tabulation && strategy != assign.Memoization {
		return assign.Result{}, fmt.Errorf("%w: %s", assign.ErrUnknownStrategy, strategy)
	}
	if err := inst.Validate(); err != nil {
		r.metrics.IncInvalidInput(source)
		r.logger.Warn("instance rejected", "instance", inst.Name, "source", source, "error", err)

		return assign.Result{}, err
	}

	if r.limit > 0 {
		if cmp, ok := r.cache.Load(inst.Fingerprint()); ok {
			r.metrics.IncCache(true)
			res := cmp.Tabulated
			if strategy == assign.Memoization {
				res = cmp.Memoized
			}
			res.OptimalPath = slices.Clone(res.OptimalPath)

			return res, nil
		}
		r.metrics.IncCache(false)
	}

	n, m := inst.Jobs(), inst.Machines()
	res, err := r.timed(strategy, n, m, func() (assign.Result, error) {
		return assign.Solve(strategy, n, m, inst.ProcessingTime, inst.TransitionCost, assign.WithContext(ctx))
	})
	if err != nil {
		r.logger.Error("solve failed", "instance", inst.Name, "strategy", strategy, "error", err)

		return assign.Result{}, err
	}
	r.logger.Debug("solve finished", "instance", inst.Name, "strategy", strategy, "min_time", res.MinTime)

	return res, nil
}

// CacheSize reports the number of cached comparisons.
func (r *Runner) CacheSize() int { return r.cache.Size() }

func (r *Runner) timed(s assign.Strategy, n, m int, fn func() (assign.Result, error)) (assign.Result, error) {
	start := time.Now()
	res, err := fn()
	if err != nil {
		return assign.Result{}, err
	}
	r.metrics.ObserveSolve(s.String(), n, m, time.Since(start).Seconds())

	return res, nil
}

func cloneComparison(c assign.Comparison) assign.Comparison {
	c.Tabulated.OptimalPath = slices.Clone(c.Tabulated.OptimalPath)
	c.Memoized.OptimalPath = slices.Clone(c.Memoized.OptimalPath)

	return c
}
