// Package jobline finds the cheapest way to run a sequence of jobs on a
// line of machines, where every job runs on exactly one machine and moving
// work between machines costs a transition.
//
// 🚀 What is jobline?
//
//	A small, dependency-light toolkit built around one dynamic program:
//		• Two engines: bottom-up tabulation and top-down memoization
//		• Optimal path reconstruction with deterministic tie-breaks
//		• Path re-pricing for any assignment (PathCost)
//		• YAML problem instances with xxh3 fingerprints
//		• A runner with caching, slog logging and Prometheus metrics
//		• A CLI and a chi-based HTTP API
//
// Under the hood, everything is organized under a few packages:
//
//	assign/        — the engines, Solve/Compare and PathCost
//	matrix/        — dense float64 tables + shape/value validators
//	instance/      — YAML instances, builtin examples, fingerprints
//	internal/      — config, logging, metrics, runner, report, httpapi
//	cmd/jobline/   — command-line entry point
//
// Quick example (3 jobs, 2 machines):
//
//	job      M1  M2            from\to  M1  M2
//	 1        5   8              M1      0   2
//	 2        6   3              M2      3   0
//	 3        4   7
//
//	cheapest: M1 → M1 → M1 = 5 + 6 + 4 = 15
//
//	go install github.com/katalvlaran/jobline/cmd/jobline@latest
package jobline
