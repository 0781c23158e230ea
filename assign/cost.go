// Package assign — cost recomputation for arbitrary assignments.
//
// PathCost prices a path with the same summation order as the engines:
//
//	total = pt[0][p0]
//	total = total + tc[p(i-1)][p(i)] + pt[i][p(i)]   for i = 1..n-1
//
// so the optimal path of any engine reproduces its MinTime exactly, not
// just within a tolerance.
package assign

import "fmt"

// PathCost returns the total cost of running job i on machine path[i].
// n and m are taken from processingTime.
//
// Errors:
//   - ErrInvalidInput for empty, ragged or mis-shaped matrices, NaN/Inf or negative values.
//   - ErrInvalidPath if len(path) != n or any entry is outside [0, m).
//
// Complexity: O(n·m + m²) validation, O(n) summation.
func PathCost(processingTime, transitionCost [][]float64, path []int) (float64, error) {
	var n, m int
	n = len(processingTime)
	if n > 0 {
		m = len(processingTime[0])
	}
	c, err := newCosts(n, m, processingTime, transitionCost)
	if err != nil {
		return 0, err
	}
	if err = c.validatePath(path); err != nil {
		return 0, err
	}

	total := c.pt[0][path[0]]
	var i int
	for i = 1; i < n; i++ {
		total = c.candidate(total, i, path[i-1], path[i])
	}

	return total, nil
}

// validatePath checks length and machine range of path.
func (c *costs) validatePath(path []int) error {
	if len(path) != c.n {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidPath, len(path), c.n)
	}
	for i, machine := range path {
		if machine < 0 || machine >= c.m {
			return fmt.Errorf("%w: job %d on machine %d, want [0,%d)", ErrInvalidPath, i, machine, c.m)
		}
	}

	return nil
}
