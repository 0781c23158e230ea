// Package assign_test provides helpers shared across *_test.go files in this package.
package assign_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/jobline/assign"
	"github.com/stretchr/testify/require"
)

// Scenarios taken from the production-line worked examples.
var (
	linePT3x2 = [][]float64{
		{5, 8},
		{6, 3},
		{4, 7},
	}
	lineTC2 = [][]float64{
		{0, 2},
		{3, 0},
	}

	linePT4x3 = [][]float64{
		{4, 6, 5},
		{7, 8, 6},
		{5, 4, 3},
		{2, 3, 4},
	}
	lineTC3 = [][]float64{
		{0, 2, 1},
		{2, 0, 3},
		{1, 3, 0},
	}
)

// randomInstance builds integer-valued costs so every sum is exact in float64.
func randomInstance(rng *rand.Rand, n, m, maxCost int) (pt, tc [][]float64) {
	pt = make([][]float64, n)
	var i, j int
	for i = 0; i < n; i++ {
		pt[i] = make([]float64, m)
		for j = 0; j < m; j++ {
			pt[i][j] = float64(rng.Intn(maxCost + 1))
		}
	}
	tc = make([][]float64, m)
	for i = 0; i < m; i++ {
		tc[i] = make([]float64, m)
		for j = 0; j < m; j++ {
			tc[i][j] = float64(rng.Intn(maxCost + 1))
		}
	}

	return pt, tc
}

// bruteForce enumerates all m^n assignments and returns the minimum cost.
func bruteForce(t *testing.T, pt, tc [][]float64) float64 {
	t.Helper()
	n, m := len(pt), len(pt[0])
	path := make([]int, n)
	best := math.Inf(1)

	var walk func(i int)
	walk = func(i int) {
		if i == n {
			c, err := assign.PathCost(pt, tc, path)
			require.NoError(t, err)
			best = math.Min(best, c)
			return
		}
		for j := 0; j < m; j++ {
			path[i] = j
			walk(i + 1)
		}
	}
	walk(0)

	return best
}

// requireValidResult checks path length, machine range and exact re-pricing.
func requireValidResult(t *testing.T, res assign.Result, pt, tc [][]float64) {
	t.Helper()
	require.Len(t, res.OptimalPath, len(pt))
	for i, machine := range res.OptimalPath {
		require.GreaterOrEqualf(t, machine, 0, "job %d", i)
		require.Lessf(t, machine, len(pt[0]), "job %d", i)
	}
	cost, err := assign.PathCost(pt, tc, res.OptimalPath)
	require.NoError(t, err)
	require.Equal(t, res.MinTime, cost, "path must re-price to MinTime exactly")
}

// scale multiplies every entry by c into a fresh matrix.
func scale(src [][]float64, c float64) [][]float64 {
	out := make([][]float64, len(src))
	for i := range src {
		out[i] = make([]float64, len(src[i]))
		for j := range src[i] {
			out[i][j] = src[i][j] * c
		}
	}

	return out
}
