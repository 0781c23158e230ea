package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jobline/assign"
	"github.com/katalvlaran/jobline/internal/metrics"
	"github.com/katalvlaran/jobline/internal/runner"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	r := runner.New(runner.WithMetrics(metrics.NewPrometheus(reg, "jobline")))
	srv := httptest.NewServer(Server{
		Runner:   r,
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Strategy: assign.Tabulation,
	}.Router())
	t.Cleanup(srv.Close)

	return srv
}

func post(t *testing.T, url, contentType, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return resp.StatusCode, out
}

const line4x3 = `{
	"name": "line-4x3",
	"processingTime": [[4,6,5],[7,8,6],[5,4,3],[2,3,4]],
	"transitionCost": [[0,2,1],[2,0,3],[1,3,0]]%s
}`

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestSolve_JSON(t *testing.T) {
	srv := newTestServer(t)

	for _, strategy := range []string{"tabulation", "memo"} {
		code, out := post(t, srv.URL+"/v1/solve", "application/json",
			strings.Replace(line4x3, "%s", `, "strategy": "`+strategy+`"`, 1))
		require.Equal(t, http.StatusOK, code, out)
		assert.Equal(t, 17.0, out["minTime"])
		assert.Equal(t, []any{0.0, 2.0, 2.0, 0.0}, out["optimalPath"])
		assert.Equal(t, "line-4x3", out["instance"])
	}
}

func TestSolve_Compare(t *testing.T) {
	srv := newTestServer(t)

	code, out := post(t, srv.URL+"/v1/solve", "application/json",
		strings.Replace(line4x3, "%s", `, "compare": true, "expected": 17`, 1))
	require.Equal(t, http.StatusOK, code, out)
	assert.Equal(t, true, out["expectedMatch"])
	assert.Equal(t, 17.0, out["pathCost"])

	cmp, ok := out["comparison"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, cmp["sameMinTime"])
	assert.Equal(t, true, cmp["samePath"])
}

func TestSolve_YAML(t *testing.T) {
	srv := newTestServer(t)
	doc := `name: line-3x2
processing_time:
  - [5, 8]
  - [6, 3]
  - [4, 7]
transition_cost:
  - [0, 2]
  - [3, 0]
`
	code, out := post(t, srv.URL+"/v1/solve?strategy=memoization", "application/yaml", doc)
	require.Equal(t, http.StatusOK, code, out)
	assert.Equal(t, 15.0, out["minTime"])
	assert.Equal(t, "memoization", out["strategy"])
}

func TestSolve_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name, contentType, body string
	}{
		{"malformed json", "application/json", `{"processingTime": [`},
		{"negative cost", "application/json", `{"processingTime": [[1,-1]], "transitionCost": [[0,1],[1,0]]}`},
		{"ragged", "application/json", `{"processingTime": [[1,2],[3]], "transitionCost": [[0,1],[1,0]]}`},
		{"missing transitions", "application/json", `{"processingTime": [[1,2]]}`},
		{"unknown strategy", "application/json", strings.Replace(line4x3, "%s", `, "strategy": "greedy"`, 1)},
		{"bad yaml", "application/yaml", "processing_time: [[1, 2]]\nbogus: 1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, out := post(t, srv.URL+"/v1/solve", tc.contentType, tc.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestExamples(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/examples")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list struct {
		Examples []struct {
			Name string `json:"name"`
		} `json:"examples"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Examples, 2)
	assert.Equal(t, "line-3x2", list.Examples[0].Name)

	run, err := http.Get(srv.URL + "/v1/examples/line-3x2")
	require.NoError(t, err)
	defer run.Body.Close()
	var rep map[string]any
	require.NoError(t, json.NewDecoder(run.Body).Decode(&rep))
	assert.Equal(t, http.StatusOK, run.StatusCode)
	assert.Equal(t, "line-3x2", rep["instance"])
	assert.Equal(t, 15.0, rep["pathCost"])

	missing, err := http.Get(srv.URL + "/v1/examples/nope")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	code, _ := post(t, srv.URL+"/v1/solve", "application/json", strings.Replace(line4x3, "%s", "", 1))
	require.Equal(t, http.StatusOK, code)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `jobline_solver_solves_total{strategy="tabulation"} 1`)
	assert.Contains(t, string(body), `jobline_cache_lookups_total{result="miss"} 1`)
}
