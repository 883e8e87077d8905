package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Mises/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Resolution = 20
	cfg.RateLimit = config.RateLimit{RPS: 1000, Burst: 1000}
	return cfg
}

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	h, _ := NewHandler(cfg, zap.NewNop())
	ts := httptest.NewServer(h)
	t.Cleanup(func() {
		ts.Client().CloseIdleConnections()
		ts.Close()
	})
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	res, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t, testConfig())

	cases := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/", http.StatusOK, "text/html; charset=utf-8"},
		{"/health", http.StatusOK, "application/json"},
		{"/api/mises/figure", http.StatusOK, "application/json"},
		{"/api/mises/figure?sigma_y=45", http.StatusOK, "application/json"},
		{"/api/mises/figure?sigma_y=500", http.StatusBadRequest, "text/plain; charset=utf-8"},
		{"/api/mises/mesh.xlsx?sigma_y=10", http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"/api/mises/report.pdf?sigma_y=10", http.StatusOK, "application/pdf"},
		{"/api/mises/section.png?sigma_y=10", http.StatusOK, "image/png"},
		{"/api/mises/snapshot.svg?sigma_y=10", http.StatusOK, "image/svg+xml"},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			res := get(t, ts, c.path)
			assert.Equal(t, c.status, res.StatusCode)
			assert.Equal(t, c.contentType, res.Header.Get("Content-Type"))
			assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
			assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestFigureHasEightTraces(t *testing.T) {
	ts := newTestServer(t, testConfig())
	res := get(t, ts, "/api/mises/figure?sigma_y=20")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var fig struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&fig))
	assert.Len(t, fig.Data, 8)
}

func TestCalcAndBatch(t *testing.T) {
	ts := newTestServer(t, testConfig())

	res, err := ts.Client().Post(ts.URL+"/api/mises/calc", "application/json", strings.NewReader(`{"sigma_y":20,"resolution":10}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), `"ok":true`)

	res2, err := ts.Client().Post(ts.URL+"/api/mises/batch", "application/json", strings.NewReader(`{"items":[{"sigma_y":5},{"sigma_y":0}]}`))
	require.NoError(t, err)
	defer res2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res2.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, testConfig())
	res := get(t, ts, "/api/mises/calc")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestPreflight(t *testing.T) {
	ts := newTestServer(t, testConfig())
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/mises/calc", nil)
	require.NoError(t, err)
	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimit{RPS: 0.001, Burst: 2}
	ts := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, get(t, ts, "/api/mises/section.png").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, ts, "/api/mises/section.png").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, get(t, ts, "/api/mises/section.png").StatusCode)
	// page and health are outside the limited subrouter
	assert.Equal(t, http.StatusOK, get(t, ts, "/health").StatusCode)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.Shutdown = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, zap.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
