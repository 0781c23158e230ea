// Package assign computes the minimum-cost assignment of a fixed sequence
// of jobs to machines, where every job has a machine-dependent processing
// cost and consecutive jobs pay a machine-to-machine transition cost.
//
// 🚀 What is solved?
//
//	Jobs 0..n-1 run in order. Running job i on machine j costs
//	processingTime[i][j]; running job i-1 on machine k and job i on
//	machine j adds transitionCost[k][j]. The state (i, j) holds the
//	cheapest way to finish jobs 0..i with job i on machine j:
//
//	  dp[0][j] = processingTime[0][j]
//	  dp[i][j] = min_k dp[i-1][k] + transitionCost[k][j] + processingTime[i][j]
//
// ✨ Key features:
//   - Tabulated: bottom-up table fill, path rebuilt by re-deriving predecessors.
//   - Memoized: top-down recursion over cached states with backpointers.
//   - Deterministic tie-break: the lowest machine index wins every minimum,
//     so both engines return the same MinTime and the same OptimalPath.
//   - PathCost re-prices any assignment bit-for-bit like the engines.
//   - Compare runs both engines and reports agreement.
//   - Options: WithContext (cancellation between job rows) and WithOnRelax
//     (a hook observing every evaluated candidate, e.g. for tracing).
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/jobline/assign"
//
//	pt := [][]float64{{5, 8}, {6, 3}, {4, 7}}
//	tc := [][]float64{{0, 2}, {3, 0}}
//	res, err := assign.Tabulated(3, 2, pt, tc)
//	// res.MinTime == 15, res.OptimalPath == []int{0, 0, 0}
//
// Performance:
//
//   - Time:   O(n·m²) for both engines
//   - Memory: O(n·m)
//
// Every call owns its tables; concurrent calls on independent inputs are safe.
package assign
