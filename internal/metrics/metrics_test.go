package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveMove("circlepop4", "ok", 5)
	r.ObserveMove("circlepop4", "ok", 3)
	r.ObserveMove("circlepop4", "insufficient_match", 0)
	r.GameFinished("circlepop4", "out_of_moves")
	r.SessionStarted()
	r.SessionStarted()
	r.SessionEnded()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.moves.WithLabelValues("circlepop4", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.moves.WithLabelValues("circlepop4", "insufficient_match")))
	assert.Equal(t, 8.0, testutil.ToFloat64(r.popped.WithLabelValues("circlepop4")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.gamesFinished.WithLabelValues("circlepop4", "out_of_moves")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sessions))
	assert.Equal(t, 1, testutil.CollectAndCount(r.regionSize))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveMove("circlepop4", "ok", 3)
		r.GameFinished("circlepop4", "no_moves")
		r.SessionStarted()
		r.SessionEnded()
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	r.ObserveMove("circlepop3", "ok", 4)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `circlepop_moves_total{result="ok",variant="circlepop3"} 1`))
	assert.Contains(t, string(body), "circlepop_region_size_bucket")

	resp, err = http.Post(srv.URL+"/metrics", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
