// Package httpapi exposes the runner over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katalvlaran/jobline/assign"
	"github.com/katalvlaran/jobline/instance"
	"github.com/katalvlaran/jobline/internal/runner"
)

// maxBody caps request bodies; a 1 MiB instance is far beyond any practical n×m.
const maxBody = 1 << 20

type Server struct {
	Runner *runner.Runner
	// Metrics serves /metrics when set, usually promhttp.HandlerFor(registry, ...).
	Metrics http.Handler
	// Strategy is used when a request names none.
	Strategy assign.Strategy
}

func (s Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/examples", s.handleListExamples)
		r.Get("/examples/{name}", s.handleRunExample)
	})

	return r
}

// solveRequest is the JSON body of POST /v1/solve. The instance fields are
// inlined next to the request options.
type solveRequest struct {
	Strategy string `json:"strategy"`
	Compare  bool   `json:"compare"`
	instance.Instance
}

type solveResponse struct {
	Instance string `json:"instance"`
	Strategy string `json:"strategy"`
	assign.Result
}

// handleSolve accepts a JSON request, or a YAML instance document when the
// Content-Type mentions yaml (options then come from the query string).
func (s Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSolve(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	if req.Compare {
		rep, err := s.Runner.Run(r.Context(), &req.Instance, runner.RunOptions{Source: "http"})
		if err != nil {
			writeErr(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
		return
	}

	strategy := s.Strategy
	if req.Strategy != "" {
		if strategy, err = assign.ParseStrategy(req.Strategy); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
	}
	res, err := s.Runner.Solve(r.Context(), &req.Instance, strategy, "http")
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, solveResponse{
		Instance: req.Instance.Name,
		Strategy: strategy.String(),
		Result:   res,
	})
}

func decodeSolve(r *http.Request) (solveRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		return solveRequest{}, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBody {
		return solveRequest{}, fmt.Errorf("body exceeds %d bytes", maxBody)
	}

	var req solveRequest
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		in, err := instance.Parse(body)
		if err != nil {
			return solveRequest{}, err
		}
		q := r.URL.Query()
		req.Instance = *in
		req.Strategy = q.Get("strategy")
		req.Compare = q.Get("compare") == "true"

		return req, nil
	}

	if err = json.Unmarshal(body, &req); err != nil {
		return solveRequest{}, fmt.Errorf("decode json: %w", err)
	}
	if req.Name == "" {
		req.Name = "request"
	}

	return req, nil
}

func (s Server) handleListExamples(w http.ResponseWriter, _ *http.Request) {
	all, err := instance.Builtin()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"examples": all})
}

func (s Server) handleRunExample(w http.ResponseWriter, r *http.Request) {
	in, err := instance.ByName(chi.URLParam(r, "name"))
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	rep, err := s.Runner.Run(r.Context(), in, runner.RunOptions{Source: "http"})
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, instance.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, instance.ErrInvalid),
		errors.Is(err, instance.ErrDecode),
		errors.Is(err, assign.ErrInvalidInput),
		errors.Is(err, assign.ErrUnknownStrategy):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{"error": err.Error()})
}
