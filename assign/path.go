package assign

import (
	"github.com/katalvlaran/jobline/matrix"
)

// argmin returns the first index holding the minimum of row and that value.
// row must be non-empty.
func argmin(row []float64) (int, float64) {
	var (
		best = 0
		j    int
	)
	for j = 1; j < len(row); j++ {
		if row[j] < row[best] {
			best = j
		}
	}

	return best, row[best]
}

// reconstructFromTable walks a completed table backward from machine final.
//
// For i = n-1..1 it re-derives the predecessor of path[i] as the first k
// minimising dp[i-1][k] + tc[k][path[i]] + pt[i][path[i]], the same
// expression and tie-break used while filling the table, so the recovered
// predecessor is exactly the one that produced dp[i][path[i]].
//
// Complexity: O(n·m).
func (c *costs) reconstructFromTable(dp *matrix.Dense, final int) []int {
	path := make([]int, c.n)
	path[c.n-1] = final

	var (
		i, k       int
		prev       []float64
		best, cand float64
		bestK      int
	)
	for i = c.n - 1; i > 0; i-- {
		prev, _ = dp.RowView(i - 1)
		bestK = 0
		best = c.candidate(prev[0], i, 0, path[i])
		for k = 1; k < c.m; k++ {
			cand = c.candidate(prev[k], i, k, path[i])
			if cand < best {
				best, bestK = cand, k
			}
		}
		path[i-1] = bestK
	}

	return path
}

// reconstructFromBack follows a backpointer table (row-major, n×m) from
// machine final down to job 0.
//
// Complexity: O(n).
func reconstructFromBack(back []int, n, m, final int) []int {
	path := make([]int, n)
	path[n-1] = final

	var i int
	for i = n - 1; i > 0; i-- {
		path[i-1] = back[i*m+path[i]]
	}

	return path
}
