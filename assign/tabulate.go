package assign

import (
	"github.com/katalvlaran/jobline/matrix"
)

// Tabulated computes the minimum-cost assignment bottom-up.
//
// Algorithm Outline:
//  1. Validate n, m and both cost matrices (ErrInvalidInput on failure).
//  2. Allocate the n×m table dp and set dp[0][j] = processingTime[0][j].
//  3. For i = 1..n-1, for j = 0..m-1:
//     dp[i][j] = min over k of dp[i-1][k] + transitionCost[k][j] + processingTime[i][j]
//     scanning k upward; the first minimum wins (strict <).
//  4. MinTime = min_j dp[n-1][j], lowest j on ties.
//  5. Rebuild the path backward from that machine (see reconstructFromTable).
//
// Complexity:
//
//	Time   = O(n·m²)
//	Memory = O(n·m)
//
// The table is owned by this call and discarded on return.
func Tabulated(n, m int, processingTime, transitionCost [][]float64, opts ...Option) (Result, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return Result{}, err
	}
	c, err := newCosts(n, m, processingTime, transitionCost)
	if err != nil {
		return Result{}, err
	}

	dp, err := c.fillTable(o)
	if err != nil {
		return Result{}, err
	}

	last, _ := dp.RowView(n - 1)
	final, minTime := argmin(last)

	return Result{
		MinTime:     minTime,
		OptimalPath: c.reconstructFromTable(dp, final),
	}, nil
}

// fillTable runs the forward recurrence and returns the completed table.
func (c *costs) fillTable(o Options) (*matrix.Dense, error) {
	dp, err := matrix.NewDense(c.n, c.m)
	if err != nil {
		return nil, err // unreachable after validation
	}
	first, _ := dp.RowView(0)
	copy(first, c.pt[0])

	var (
		i, j, k    int
		prev, curr []float64
		best, cand float64
	)
	for i = 1; i < c.n; i++ {
		if err = checkContext(o.Ctx, i); err != nil {
			return nil, err
		}
		prev, _ = dp.RowView(i - 1)
		curr, _ = dp.RowView(i)
		for j = 0; j < c.m; j++ {
			for k = 0; k < c.m; k++ {
				cand = c.candidate(prev[k], i, k, j)
				improved := k == 0 || cand < best
				if improved {
					best = cand
				}
				o.OnRelax(Relaxation{
					Job: i, Machine: j, Prev: k,
					PrevCost: prev[k], Transition: c.tc[k][j], Processing: c.pt[i][j],
					Total: cand, Improved: improved,
				})
			}
			curr[j] = best
		}
	}

	return dp, nil
}
