// Package assign defines options, results and error definitions
// for the job-to-machine assignment engines.
package assign

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for assignment.
var (
	// ErrInvalidInput is returned when n or m is not positive, or when a cost
	// matrix is missing, has the wrong shape, or holds NaN, ±Inf or negative values.
	ErrInvalidInput = errors.New("assign: invalid input")

	// ErrInvalidPath is returned by PathCost for a path of the wrong length
	// or with a machine index outside [0, m).
	ErrInvalidPath = errors.New("assign: invalid path")

	// ErrUnknownStrategy is returned when a Strategy value is not recognised.
	ErrUnknownStrategy = errors.New("assign: unknown strategy")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("assign: invalid option supplied")
)

// Strategy selects the engine used by Solve.
type Strategy int

const (
	// Tabulation fills the whole n×m cost table forward (bottom-up).
	Tabulation Strategy = iota

	// Memoization evaluates the final row lazily (top-down) with cached states.
	Memoization
)

// String returns the lower-case strategy name.
func (s Strategy) String() string {
	switch s {
	case Tabulation:
		return "tabulation"
	case Memoization:
		return "memoization"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name ("tabulation", "memoization", or the
// short forms "tab", "memo") to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tabulation", "tab", "bottom-up":
		return Tabulation, nil
	case "memoization", "memo", "top-down":
		return Memoization, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Result is the outcome of one engine invocation.
//   - MinTime: minimum total processing plus transition cost.
//   - OptimalPath: OptimalPath[i] is the machine assigned to job i; len == n.
type Result struct {
	MinTime     float64 `json:"minTime"`
	OptimalPath []int   `json:"optimalPath"`
}

// Comparison holds the outcome of running both engines on one input.
type Comparison struct {
	Tabulated   Result `json:"tabulated"`
	Memoized    Result `json:"memoized"`
	SameMinTime bool   `json:"sameMinTime"`
	SamePath    bool   `json:"samePath"`
}

// Agree reports whether both engines produced the same cost and path.
func (c Comparison) Agree() bool {
	return c.SameMinTime && c.SamePath
}

// Relaxation describes one candidate evaluated for state (Job, Machine):
// arriving from machine Prev after job Job-1.
//
//	Total = PrevCost + Transition + Processing
//
// Improved is true when the candidate became the new best for the state.
type Relaxation struct {
	Job        int
	Machine    int
	Prev       int
	PrevCost   float64
	Transition float64
	Processing float64
	Total      float64
	Improved   bool
}

// Option configures an engine via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation
// when the engine is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize an engine run.
type Options struct {
	// Ctx allows cooperative cancellation; engines check it once per job row.
	Ctx context.Context

	// OnRelax is called for every candidate (job, machine, previous machine)
	// in evaluation order. It must not retain or mutate engine state.
	OnRelax func(Relaxation)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - a no-op OnRelax hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnRelax: func(Relaxation) {},
	}
}

// WithContext sets a context checked between job rows.
// A nil context is an option violation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx == nil {
			o.err = fmt.Errorf("%w: nil context", ErrOptionViolation)
			return
		}
		o.Ctx = ctx
	}
}

// WithOnRelax registers a callback run for each evaluated candidate.
// A nil fn leaves the no-op hook in place.
func WithOnRelax(fn func(Relaxation)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRelax = fn
		}
	}
}

// buildOptions applies opts over DefaultOptions and reports the first violation.
func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.err != nil {
		return Options{}, o.err
	}

	return o, nil
}

// checkContext wraps a context error with the job row being processed.
func checkContext(ctx context.Context, job int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("assign: stopped at job %d: %w", job, err)
	}

	return nil
}
