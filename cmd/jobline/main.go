// Command jobline solves sequential job-to-machine assignment problems.
//
//	jobline                           # run every bundled example
//	jobline -example line-4x3 -trace  # one example, logging each relaxation
//	jobline -instance plant.yaml      # solve an instance file
//	jobline -serve                    # HTTP API on JOBLINE_ADDR
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/jobline/assign"
	"github.com/katalvlaran/jobline/instance"
	"github.com/katalvlaran/jobline/internal/config"
	"github.com/katalvlaran/jobline/internal/httpapi"
	"github.com/katalvlaran/jobline/internal/logging"
	"github.com/katalvlaran/jobline/internal/metrics"
	"github.com/katalvlaran/jobline/internal/report"
	"github.com/katalvlaran/jobline/internal/runner"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "jobline:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		instancePath = flag.String("instance", "", "solve the YAML instance at this path")
		example      = flag.String("example", "", "solve one bundled example by name (default: all)")
		trace        = flag.Bool("trace", false, "log every candidate relaxation (forces debug level)")
		serve        = flag.Bool("serve", false, "serve the HTTP API instead of solving once")
	)
	flag.Parse()

	loadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *trace {
		cfg.LogLevel = "debug"
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r := runner.New(
		runner.WithLogger(logger),
		runner.WithMetrics(metrics.NewPrometheus(reg, cfg.MetricsNamespace)),
		runner.WithCacheLimit(cfg.CacheLimit),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		strategy, err := assign.ParseStrategy(cfg.Strategy)
		if err != nil {
			return err
		}

		return listen(ctx, logger, cfg.Addr, httpapi.Server{
			Runner:   r,
			Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			Strategy: strategy,
		})
	}

	instances, err := selectInstances(*instancePath, *example)
	if err != nil {
		return err
	}

	var ro runner.RunOptions
	if *trace {
		ro.Trace = report.TraceHook(logger)
	}
	if *instancePath != "" {
		ro.Source = "file"
	}

	var failed []error
	for _, in := range instances {
		rep, err := r.Run(ctx, in, ro)
		if rep.RunID != "" {
			if werr := report.Write(os.Stdout, rep); werr != nil {
				return werr
			}
		}
		if err != nil {
			failed = append(failed, err)
		}
	}

	return errors.Join(failed...)
}

func selectInstances(path, name string) ([]*instance.Instance, error) {
	switch {
	case path != "" && name != "":
		return nil, errors.New("-instance and -example are mutually exclusive")
	case path != "":
		in, err := instance.Load(path)
		if err != nil {
			return nil, err
		}

		return []*instance.Instance{in}, nil
	case name != "":
		in, err := instance.ByName(name)
		if err != nil {
			return nil, err
		}

		return []*instance.Instance{in}, nil
	default:
		return instance.Builtin()
	}
}

func listen(ctx context.Context, logger *slog.Logger, addr string, s httpapi.Server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", addr, "strategy", s.Strategy)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}

// loadDotEnv loads the nearest .env walking up from the working directory.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
