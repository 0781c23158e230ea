package assign_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/jobline/assign"
	"github.com/katalvlaran/jobline/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engine adapts both public entry points to one signature for table tests.
type engine struct {
	name string
	run  func(n, m int, pt, tc [][]float64, opts ...assign.Option) (assign.Result, error)
}

var engines = []engine{
	{"tabulated", assign.Tabulated},
	{"memoized", assign.Memoized},
}

// TestEngines_Line3x2 prices the 3-job, 2-machine line.
// Staying on machine 0 costs 5+6+4 = 15; every switch costs at least 2 more.
func TestEngines_Line3x2(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			res, err := e.run(3, 2, linePT3x2, lineTC2)
			require.NoError(t, err)
			assert.Equal(t, 15.0, res.MinTime)
			assert.Equal(t, []int{0, 0, 0}, res.OptimalPath)
			requireValidResult(t, res, linePT3x2, lineTC2)
		})
	}
}

// TestEngines_Line4x3 prices the 4-job, 3-machine line: 4 + (1+6) + (0+3) + (1+2) = 17.
func TestEngines_Line4x3(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			res, err := e.run(4, 3, linePT4x3, lineTC3)
			require.NoError(t, err)
			assert.Equal(t, 17.0, res.MinTime)
			assert.Equal(t, []int{0, 2, 2, 0}, res.OptimalPath)
			requireValidResult(t, res, linePT4x3, lineTC3)
		})
	}
}

// TestEngines_SingleJob checks the base case n=1: the cheapest machine wins.
func TestEngines_SingleJob(t *testing.T) {
	pt := [][]float64{{7, 3, 9, 3}}
	tc := [][]float64{
		{0, 1, 1, 1},
		{1, 0, 1, 1},
		{1, 1, 0, 1},
		{1, 1, 1, 0},
	}
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			res, err := e.run(1, 4, pt, tc)
			require.NoError(t, err)
			assert.Equal(t, 3.0, res.MinTime)
			assert.Equal(t, []int{1}, res.OptimalPath, "lowest index wins the tie between machines 1 and 3")
		})
	}
}

// TestEngines_SingleMachine: with m=1 every job runs on machine 0.
func TestEngines_SingleMachine(t *testing.T) {
	pt := [][]float64{{2}, {3}, {4}}
	tc := [][]float64{{1}}
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			res, err := e.run(3, 1, pt, tc)
			require.NoError(t, err)
			assert.Equal(t, 11.0, res.MinTime, "2 + (1+3) + (1+4)")
			assert.Equal(t, []int{0, 0, 0}, res.OptimalPath)
		})
	}
}

// TestEngines_TieBreakFirstMinimum: all-equal costs must resolve to machine 0 everywhere.
func TestEngines_TieBreakFirstMinimum(t *testing.T) {
	pt := [][]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}
	tc := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			res, err := e.run(3, 3, pt, tc)
			require.NoError(t, err)
			assert.Equal(t, 3.0, res.MinTime)
			assert.Equal(t, []int{0, 0, 0}, res.OptimalPath)
		})
	}
}

// TestEngines_TieBreakPredecessor: two predecessors tie for the final state;
// the lower-indexed one must be chosen.
func TestEngines_TieBreakPredecessor(t *testing.T) {
	// dp[0] = [2, 1]; into machine 1: 2+1 = 3 from k=0, 1+2 = 3 from k=1.
	pt := [][]float64{{2, 1}, {9, 0}}
	tc := [][]float64{{0, 1}, {0, 2}}
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			res, err := e.run(2, 2, pt, tc)
			require.NoError(t, err)
			assert.Equal(t, 3.0, res.MinTime)
			assert.Equal(t, []int{0, 1}, res.OptimalPath)
		})
	}
}

// TestEngines_AsymmetricTransition ensures tc[k][j] is read as "from k to j".
func TestEngines_AsymmetricTransition(t *testing.T) {
	pt := [][]float64{{0, 10}, {10, 0}}
	tc := [][]float64{{0, 1}, {100, 0}}
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			res, err := e.run(2, 2, pt, tc)
			require.NoError(t, err)
			assert.Equal(t, 1.0, res.MinTime, "0 on machine 0, then switch 0→1 for 1")
			assert.Equal(t, []int{0, 1}, res.OptimalPath)
		})
	}
}

// TestEngines_InvalidInput covers every structural violation.
func TestEngines_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		n, m   int
		pt, tc [][]float64
		also   error
	}{
		{"n zero", 0, 2, linePT3x2, lineTC2, nil},
		{"m zero", 3, 0, linePT3x2, lineTC2, nil},
		{"n negative", -1, 2, linePT3x2, lineTC2, nil},
		{"nil processing", 3, 2, nil, lineTC2, nil},
		{"nil transition", 3, 2, linePT3x2, nil, nil},
		{"too few jobs", 4, 2, linePT3x2, lineTC2, nil},
		{"too few machines", 3, 3, linePT3x2, lineTC3, matrix.ErrDimensionMismatch},
		{"transition not square", 3, 2, linePT3x2, [][]float64{{0, 2}}, nil},
		{"ragged processing", 3, 2, [][]float64{{5, 8}, {6}, {4, 7}}, lineTC2, matrix.ErrRaggedRows},
		{"nil row", 3, 2, [][]float64{{5, 8}, nil, {4, 7}}, lineTC2, matrix.ErrNilMatrix},
		{"negative cost", 3, 2, [][]float64{{5, 8}, {6, -3}, {4, 7}}, lineTC2, matrix.ErrNegativeValue},
		{"nan cost", 3, 2, linePT3x2, [][]float64{{0, math.NaN()}, {3, 0}}, matrix.ErrNaNInf},
		{"inf cost", 3, 2, [][]float64{{5, 8}, {6, 3}, {math.Inf(1), 7}}, lineTC2, matrix.ErrNaNInf},
	}
	for _, e := range engines {
		for _, tc := range tests {
			t.Run(e.name+"/"+tc.name, func(t *testing.T) {
				res, err := e.run(tc.n, tc.m, tc.pt, tc.tc)
				require.ErrorIs(t, err, assign.ErrInvalidInput)
				if tc.also != nil {
					require.ErrorIs(t, err, tc.also)
				}
				assert.Equal(t, assign.Result{}, res, "no partial result")
			})
		}
	}
}

// TestEngines_Equivalence compares both engines and brute force on random instances.
func TestEngines_Equivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var trial int
	for trial = 0; trial < 60; trial++ {
		n := 1 + rng.Intn(6)
		m := 1 + rng.Intn(4)
		pt, tc := randomInstance(rng, n, m, 9)

		cmp, err := assign.Compare(n, m, pt, tc)
		require.NoError(t, err)
		require.Truef(t, cmp.Agree(), "trial %d: %+v", trial, cmp)
		requireValidResult(t, cmp.Tabulated, pt, tc)
		requireValidResult(t, cmp.Memoized, pt, tc)
		require.Equalf(t, bruteForce(t, pt, tc), cmp.Tabulated.MinTime, "trial %d", trial)
	}
}

// TestEngines_Deterministic repeats the same call and expects identical paths.
func TestEngines_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pt, tc := randomInstance(rng, 30, 5, 3) // small cost range forces many ties
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			first, err := e.run(30, 5, pt, tc)
			require.NoError(t, err)
			for i := 0; i < 5; i++ {
				again, err := e.run(30, 5, pt, tc)
				require.NoError(t, err)
				require.Equal(t, first, again)
			}
		})
	}
}

// TestEngines_Scaling: scaling all costs by c scales MinTime by c and keeps the path.
// Powers of two keep float64 arithmetic exact.
func TestEngines_Scaling(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			base, err := e.run(4, 3, linePT4x3, lineTC3)
			require.NoError(t, err)
			for _, c := range []float64{0.5, 2, 8} {
				got, err := e.run(4, 3, scale(linePT4x3, c), scale(lineTC3, c))
				require.NoError(t, err)
				assert.Equal(t, base.MinTime*c, got.MinTime, "c=%v", c)
				assert.Equal(t, base.OptimalPath, got.OptimalPath, "c=%v", c)
			}
		})
	}
}

// TestEngines_InputNotMutated checks that callers' slices are left untouched.
func TestEngines_InputNotMutated(t *testing.T) {
	pt := scale(linePT4x3, 1)
	tc := scale(lineTC3, 1)
	for _, e := range engines {
		_, err := e.run(4, 3, pt, tc)
		require.NoError(t, err)
		require.Equal(t, linePT4x3, pt)
		require.Equal(t, lineTC3, tc)
	}
}

// TestEngines_OnRelax counts hook calls: every state after job 0 sees m candidates.
func TestEngines_OnRelax(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			var (
				calls    int
				improved int
			)
			hook := assign.WithOnRelax(func(r assign.Relaxation) {
				calls++
				if r.Improved {
					improved++
				}
				require.Equal(t, r.PrevCost+r.Transition+r.Processing, r.Total)
				require.Equal(t, linePT4x3[r.Job][r.Machine], r.Processing)
				require.Equal(t, lineTC3[r.Prev][r.Machine], r.Transition)
			})
			_, err := e.run(4, 3, linePT4x3, lineTC3, hook)
			require.NoError(t, err)
			assert.Equal(t, 3*3*3, calls)
			assert.GreaterOrEqual(t, improved, 3*3, "each state improves at least once")
		})
	}
}

// TestEngines_ContextCanceled stops before the first row and returns no result.
func TestEngines_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, e := range engines {
		t.Run(e.name, func(t *testing.T) {
			res, err := e.run(3, 2, linePT3x2, lineTC2, assign.WithContext(ctx))
			require.ErrorIs(t, err, context.Canceled)
			assert.Equal(t, assign.Result{}, res)
		})
	}
}

// TestEngines_OptionViolation rejects a nil context.
func TestEngines_OptionViolation(t *testing.T) {
	var nilCtx context.Context
	for _, e := range engines {
		_, err := e.run(3, 2, linePT3x2, lineTC2, assign.WithContext(nilCtx))
		require.ErrorIs(t, err, assign.ErrOptionViolation)
	}
}

// TestEngines_LargeInstance exercises deep memo recursion against the table.
func TestEngines_LargeInstance(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	pt, tc := randomInstance(rng, 5000, 6, 50)
	cmp, err := assign.Compare(5000, 6, pt, tc)
	require.NoError(t, err)
	require.True(t, cmp.Agree())
	requireValidResult(t, cmp.Memoized, pt, tc)
}
