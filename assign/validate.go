// Package assign - validation shared by both engines and PathCost.
//
// Inputs are checked in a fixed order and the first violation wins:
//  1. n ≥ 1, m ≥ 1.
//  2. processingTime: non-nil, exactly n rows of m columns, finite, ≥ 0.
//  3. transitionCost: non-nil, exactly m rows of m columns, finite, ≥ 0.
//
// Every failure is ErrInvalidInput wrapped together with the underlying
// matrix sentinel, so callers can match either with errors.Is.
package assign

import (
	"fmt"

	"github.com/katalvlaran/jobline/matrix"
)

// costs is a validated, private copy of one problem instance.
// pt and tc are row views into Dense copies, so callers mutating their
// slices after the call cannot affect an engine run.
type costs struct {
	n, m int
	pt   [][]float64 // n×m processing time
	tc   [][]float64 // m×m transition cost
}

// newCosts validates the raw inputs and returns the engine view of them.
// Complexity: O(n·m + m²).
func newCosts(n, m int, processingTime, transitionCost [][]float64) (*costs, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: job count n=%d must be at least 1", ErrInvalidInput, n)
	}
	if m <= 0 {
		return nil, fmt.Errorf("%w: machine count m=%d must be at least 1", ErrInvalidInput, m)
	}

	pt, err := denseCosts("processing time", processingTime, n, m)
	if err != nil {
		return nil, err
	}
	tc, err := denseCosts("transition cost", transitionCost, m, m)
	if err != nil {
		return nil, err
	}

	return &costs{n: n, m: m, pt: rowViews(pt), tc: rowViews(tc)}, nil
}

// denseCosts copies src into a Dense and applies matrix.ValidateCosts.
func denseCosts(name string, src [][]float64, rows, cols int) (*matrix.Dense, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: %s matrix is nil", ErrInvalidInput, name)
	}
	if len(src) != rows {
		return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrInvalidInput, name, len(src), rows)
	}
	d, err := matrix.FromRows(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, name, err)
	}
	if err = matrix.ValidateCosts(d, rows, cols); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, name, err)
	}

	return d, nil
}

// rowViews exposes every row of d as an aliasing slice.
func rowViews(d *matrix.Dense) [][]float64 {
	rows := make([][]float64, d.Rows())
	var i int
	for i = range rows {
		rows[i], _ = d.RowView(i) // i is in range by construction
	}

	return rows
}

// candidate is the single place where a transition is priced.
// Both engines and PathCost sum in this order so results are bit-identical.
func (c *costs) candidate(prevCost float64, job, prev, machine int) float64 {
	return prevCost + c.tc[prev][machine] + c.pt[job][machine]
}

// Validate reports whether (n, m, processingTime, transitionCost) is an
// acceptable engine input without solving it. The error, if any, is the one
// Tabulated and Memoized would return.
func Validate(n, m int, processingTime, transitionCost [][]float64) error {
	_, err := newCosts(n, m, processingTime, transitionCost)

	return err
}
