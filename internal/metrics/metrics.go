// Package metrics exposes CirclePop gameplay counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder tracks moves, pops and sessions. A nil *Recorder records nothing.
type Recorder struct {
	moves         *prometheus.CounterVec
	popped        *prometheus.CounterVec
	regionSize    *prometheus.HistogramVec
	gamesFinished *prometheus.CounterVec
	sessions      prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circlepop_moves_total",
				Help: "Attempted moves by variant and result",
			},
			[]string{"variant", "result"},
		),
		popped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circlepop_cells_popped_total",
				Help: "Pieces removed by accepted moves",
			},
			[]string{"variant"},
		),
		regionSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "circlepop_region_size",
				Help:    "Size of popped regions",
				Buckets: []float64{3, 5, 8, 12, 20, 30, 50, 80},
			},
			[]string{"variant"},
		),
		gamesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circlepop_games_finished_total",
				Help: "Finished games by variant and end reason",
			},
			[]string{"variant", "reason"},
		),
		sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "circlepop_active_sessions",
				Help: "Connected interactive sessions",
			},
		),
	}
	reg.MustRegister(r.moves, r.popped, r.regionSize, r.gamesFinished, r.sessions)
	return r
}

// ObserveMove records one attempted move. result is "ok" for accepted moves
// or the rejection label otherwise.
func (r *Recorder) ObserveMove(variant, result string, popped int) {
	if r == nil {
		return
	}
	r.moves.WithLabelValues(variant, result).Inc()
	if popped > 0 {
		r.popped.WithLabelValues(variant).Add(float64(popped))
		r.regionSize.WithLabelValues(variant).Observe(float64(popped))
	}
}

// GameFinished records the end of a game.
func (r *Recorder) GameFinished(variant, reason string) {
	if r == nil {
		return
	}
	r.gamesFinished.WithLabelValues(variant, reason).Inc()
}

// SessionStarted increments the active session gauge.
func (r *Recorder) SessionStarted() {
	if r == nil {
		return
	}
	r.sessions.Inc()
}

// SessionEnded decrements the active session gauge.
func (r *Recorder) SessionEnded() {
	if r == nil {
		return
	}
	r.sessions.Dec()
}

// Handler serves /metrics from gatherer and a /healthz liveness probe.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

// Serve runs the metrics endpoint on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
