package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/couchcryptid/weather-query-service/internal/adapter/http"
	"github.com/couchcryptid/weather-query-service/internal/domain"
	"github.com/couchcryptid/weather-query-service/internal/index"
	"github.com/couchcryptid/weather-query-service/internal/observability"
	"github.com/couchcryptid/weather-query-service/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

// capturingExecutor records the query it received and returns canned results.
type capturingExecutor struct {
	got     *domain.Query
	results []domain.Observation
}

func (c *capturingExecutor) Execute(q domain.Query) []domain.Observation {
	c.got = &q
	return c.results
}

func newTestServer(exec httpadapter.QueryExecutor, readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", exec, &mockReadiness{err: readyErr},
		slog.New(slog.DiscardHandler), observability.NewMetricsForTesting())
}

// newQueryServer wires a real planner over a two-record dataset, covering
// the request layer and core end to end.
func newQueryServer(t *testing.T) *httpadapter.Server {
	t.Helper()
	ix, err := index.Build([]domain.Observation{
		{Date: domain.Day(2012, 6, 3), TempMax: 17.2, TempMin: 9.4, Wind: 2.9, Condition: domain.Sun},
		{Date: domain.Day(2012, 6, 4), Precipitation: 1.3, TempMax: 12.8, TempMin: 8.9, Wind: 3.1, Condition: domain.Rain},
	})
	require.NoError(t, err)
	planner := query.NewPlanner(ix, slog.New(slog.DiscardHandler), observability.NewMetricsForTesting())
	return newTestServer(planner, nil)
}

func get(srv *httpadapter.Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeResults(t *testing.T, rec *httptest.ResponseRecorder) []domain.Observation {
	t.Helper()
	var results []domain.Observation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	return results
}

func TestQueryByDate(t *testing.T) {
	srv := newQueryServer(t)

	rec := get(srv, "/query?date=2012-06-03")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	results := decodeResults(t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, domain.Day(2012, 6, 3), results[0].Date)
	assert.Equal(t, domain.Sun, results[0].Condition)
}

func TestQueryByWeather(t *testing.T) {
	srv := newQueryServer(t)

	rec := get(srv, "/query?weather=rain")

	require.Equal(t, http.StatusOK, rec.Code)
	results := decodeResults(t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, domain.Day(2012, 6, 4), results[0].Date)
}

func TestQueryNoMatchesIsEmptyArray(t *testing.T) {
	srv := newQueryServer(t)

	rec := get(srv, "/query?date=2099-01-01")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestQueryParameterConversion(t *testing.T) {
	exec := &capturingExecutor{}
	srv := newTestServer(exec, nil)

	rec := get(srv, "/query?limit=5&date=2012-06-03&weather=SUN")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, exec.got)
	require.NotNil(t, exec.got.Limit)
	assert.Equal(t, 5, *exec.got.Limit)
	require.NotNil(t, exec.got.Date)
	assert.Equal(t, domain.Day(2012, 6, 3), *exec.got.Date)
	require.NotNil(t, exec.got.Condition)
	assert.Equal(t, domain.Sun, *exec.got.Condition)
}

func TestQueryNoParamsIsUnconstrained(t *testing.T) {
	exec := &capturingExecutor{}
	srv := newTestServer(exec, nil)

	rec := get(srv, "/query")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, exec.got)
	assert.Nil(t, exec.got.Limit)
	assert.Nil(t, exec.got.Date)
	assert.Nil(t, exec.got.Condition)
}

func TestQueryRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantMsg string
	}{
		{"negative limit", "/query?limit=-1", "non-negative integer"},
		{"non-numeric limit", "/query?limit=ten", "non-negative integer"},
		{"bad date format", "/query?date=03-06-2012", "YYYY-MM-DD"},
		{"impossible date", "/query?date=2012-13-40", "YYYY-MM-DD"},
		{"unknown weather", "/query?weather=tornado", "drizzle, rain, snow, sun, fog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &capturingExecutor{}
			srv := newTestServer(exec, nil)

			rec := get(srv, tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body["error"], tt.wantMsg)
			assert.Nil(t, exec.got, "planner must not run for invalid input")
		})
	}
}

func TestWelcomePage(t *testing.T) {
	srv := newQueryServer(t)

	rec := get(srv, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/query")
}

func TestHealthzReturns200(t *testing.T) {
	srv := newQueryServer(t)

	rec := get(srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newQueryServer(t)

	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&capturingExecutor{}, fmt.Errorf("dataset has not been loaded yet"))

	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "dataset has not been loaded yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newQueryServer(t)

	rec := get(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
