// Package report renders runner results for humans.
//
// Jobs and machines are printed 1-based ("job 1: machine 3"); every other
// layer of jobline uses 0-based indices.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/katalvlaran/jobline/assign"
	"github.com/katalvlaran/jobline/internal/runner"
)

const rule = "-----------------------"

// Write prints rep to w:
//
//	----- line-4x3 -----
//	minimum total time:  17
//	expected:            17 (pass)
//
//	optimal assignment:
//	  job 1  machine 1
//	  ...
//
//	tabulation:   17 [1 3 3 1]
//	memoization:  17 [1 3 3 1]
//	engines:      agree
//	-----------------------
func Write(w io.Writer, rep runner.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "----- %s -----\n", rep.Instance)
	fmt.Fprintf(tw, "run:\t%s\n", rep.RunID)
	fmt.Fprintf(tw, "size:\t%d jobs × %d machines\n", rep.Jobs, rep.Machines)
	fmt.Fprintf(tw, "fingerprint:\t%s\n", rep.Fingerprint)
	if rep.Cached {
		fmt.Fprintf(tw, "cached:\tyes\n")
	}
	fmt.Fprintf(tw, "minimum total time:\t%g\n", rep.MinTime())
	if rep.Expected != nil {
		fmt.Fprintf(tw, "expected:\t%g (%s)\n", *rep.Expected, verdict(rep.ExpectedMatch, "pass", "FAIL"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(tw, "\noptimal assignment:\n")
	for job, machine := range rep.Path() {
		fmt.Fprintf(tw, "  job %d\tmachine %d\n", job+1, machine+1)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	cmp := rep.Comparison
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "tabulation:\t%g %v\n", cmp.Tabulated.MinTime, oneBased(cmp.Tabulated.OptimalPath))
	fmt.Fprintf(tw, "memoization:\t%g %v\n", cmp.Memoized.MinTime, oneBased(cmp.Memoized.OptimalPath))
	fmt.Fprintf(tw, "engines:\t%s\n", verdict(cmp.Agree(), "agree", "DISAGREE"))
	fmt.Fprintln(tw, rule)

	return tw.Flush()
}

// TraceHook returns an OnRelax hook that logs every candidate at debug level.
// Labels are 1-based to match Write.
func TraceHook(logger *slog.Logger) func(assign.Relaxation) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return func(assign.Relaxation) {}
	}

	return func(r assign.Relaxation) {
		logger.Debug("relax",
			"job", r.Job+1,
			"machine", r.Machine+1,
			"prev_machine", r.Prev+1,
			"prev_cost", r.PrevCost,
			"transition", r.Transition,
			"processing", r.Processing,
			"total", r.Total,
			"improved", r.Improved,
		)
	}
}

func oneBased(path []int) []int {
	out := make([]int, len(path))
	for i, v := range path {
		out[i] = v + 1
	}

	return out
}

func verdict(ok bool, yes, no string) string {
	if ok {
		return yes
	}

	return no
}
