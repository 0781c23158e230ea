package assign

import (
	"fmt"
	"slices"
)

// Solve dispatches to Tabulated or Memoized according to strategy.
// Returns ErrUnknownStrategy for values other than Tabulation and Memoization.
func Solve(strategy Strategy, n, m int, processingTime, transitionCost [][]float64, opts ...Option) (Result, error) {
	switch strategy {
	case Tabulation:
		return Tabulated(n, m, processingTime, transitionCost, opts...)
	case Memoization:
		return Memoized(n, m, processingTime, transitionCost, opts...)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
}

// Compare runs both engines on the same input and reports whether they agree.
// The same options (context, hook) apply to both runs, tabulation first.
// Any engine error is returned as is, with no partial Comparison.
func Compare(n, m int, processingTime, transitionCost [][]float64, opts ...Option) (Comparison, error) {
	tab, err := Tabulated(n, m, processingTime, transitionCost, opts...)
	if err != nil {
		return Comparison{}, err
	}
	memo, err := Memoized(n, m, processingTime, transitionCost, opts...)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Tabulated:   tab,
		Memoized:    memo,
		SameMinTime: tab.MinTime == memo.MinTime,
		SamePath:    slices.Equal(tab.OptimalPath, memo.OptimalPath),
	}, nil
}
