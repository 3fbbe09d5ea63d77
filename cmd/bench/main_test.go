package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	pmet "github.com/IvanBrykalov/lrucache/metrics/prom"
)

func TestRouter(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	rec := pmet.New(reg, "lru", "router", nil)
	rec.Hit()
	srv := httptest.NewServer(newRouter(reg))
	t.Cleanup(srv.Close)

	tests := map[string]struct {
		method   string
		path     string
		status   int
		contains string
	}{
		"healthz":          {method: http.MethodGet, path: "/healthz", status: http.StatusOK, contains: "ok"},
		"metrics":          {method: http.MethodGet, path: "/metrics", status: http.StatusOK, contains: "lru_router_hits_total 1"},
		"pprof index":      {method: http.MethodGet, path: "/debug/pprof/", status: http.StatusOK, contains: "goroutine"},
		"metrics POST":     {method: http.MethodPost, path: "/metrics", status: http.StatusMethodNotAllowed},
		"unknown endpoint": {method: http.MethodGet, path: "/nope", status: http.StatusNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := require.New(t)
			req, err := http.NewRequest(tc.method, srv.URL+tc.path, nil)
			r.NoError(err)
			resp, err := http.DefaultClient.Do(req)
			r.NoError(err)
			defer resp.Body.Close()

			r.Equal(tc.status, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			r.NoError(err)
			if tc.contains != "" {
				r.Contains(string(body), tc.contains)
			}
		})
	}
}

func TestApp_RunsShortWorkload(t *testing.T) {
	err := newApp().Run([]string{"bench",
		"--cap", "16", "--workers", "2", "--duration", "30ms",
		"--dist", "seq", "--keys", "32", "--log-level", "error",
	})
	require.NoError(t, err)
}

func TestApp_RejectsInvalidFlags(t *testing.T) {
	err := newApp().Run([]string{"bench", "--cap", "-1", "--log-level", "error"})
	require.ErrorContains(t, err, "capacity")
}
