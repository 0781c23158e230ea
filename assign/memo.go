package assign

import (
	"github.com/katalvlaran/jobline/matrix"
)

// unset marks a backpointer whose state has not been evaluated yet.
const unset = -1

// memoEngine owns the lazily filled tables of one Memoized call.
//
//	memo[i][j] = cost(i, j) once evaluated
//	back[i*m+j] = minimising previous machine, or unset
//
// Row 0 needs no storage: cost(0, j) is processingTime[0][j].
type memoEngine struct {
	c    *costs
	o    Options
	memo *matrix.Dense
	back []int
}

// Memoized computes the minimum-cost assignment top-down.
//
// cost(i, j) is defined recursively:
//
//	cost(0, j) = processingTime[0][j]
//	cost(i, j) = min over k of cost(i-1, k) + transitionCost[k][j] + processingTime[i][j]
//
// Each state is evaluated at most once and its minimising k is stored as a
// backpointer, bounding the work to O(n·m²) instead of the exponential
// naive recursion. The final machine is the lowest j minimising
// cost(n-1, j); the path follows backpointers from there.
//
// Errors and tie-breaks are identical to Tabulated, so both engines return
// the same Result for the same input.
//
// Complexity:
//
//	Time   = O(n·m²)
//	Memory = O(n·m), recursion depth O(n)
func Memoized(n, m int, processingTime, transitionCost [][]float64, opts ...Option) (Result, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return Result{}, err
	}
	c, err := newCosts(n, m, processingTime, transitionCost)
	if err != nil {
		return Result{}, err
	}

	e, err := newMemoEngine(c, o)
	if err != nil {
		return Result{}, err
	}

	var (
		j       int
		v, best float64
		final   int
	)
	for j = 0; j < m; j++ {
		if v, err = e.cost(n-1, j); err != nil {
			return Result{}, err
		}
		if j == 0 || v < best {
			best, final = v, j
		}
	}

	return Result{
		MinTime:     best,
		OptimalPath: reconstructFromBack(e.back, n, m, final),
	}, nil
}

func newMemoEngine(c *costs, o Options) (*memoEngine, error) {
	memo, err := matrix.NewDense(c.n, c.m)
	if err != nil {
		return nil, err
	}
	back := make([]int, c.n*c.m)
	for i := range back {
		back[i] = unset
	}

	return &memoEngine{c: c, o: o, memo: memo, back: back}, nil
}

// cost returns cost(i, j), evaluating and caching it on first use.
func (e *memoEngine) cost(i, j int) (float64, error) {
	if i == 0 {
		return e.c.pt[0][j], nil
	}
	if e.back[i*e.c.m+j] != unset {
		return e.memo.At(i, j)
	}
	// One check per row: state (i, 0) is always the first of its row to be evaluated.
	if j == 0 {
		if err := checkContext(e.o.Ctx, i); err != nil {
			return 0, err
		}
	}

	var (
		k             int
		prevCost      float64
		cand, best    float64
		bestK         int
		err           error
		transition    = e.c.tc
		processingRow = e.c.pt[i]
	)
	for k = 0; k < e.c.m; k++ {
		if prevCost, err = e.cost(i-1, k); err != nil {
			return 0, err
		}
		cand = e.c.candidate(prevCost, i, k, j)
		improved := k == 0 || cand < best
		if improved {
			best, bestK = cand, k
		}
		e.o.OnRelax(Relaxation{
			Job: i, Machine: j, Prev: k,
			PrevCost: prevCost, Transition: transition[k][j], Processing: processingRow[j],
			Total: cand, Improved: improved,
		})
	}

	e.back[i*e.c.m+j] = bestK
	if err = e.memo.Set(i, j, best); err != nil {
		return 0, err
	}

	return best, nil
}
