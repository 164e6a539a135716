// Package metrics exposes game activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/reflex/internal/game"
)

// Collector records rounds and runs. It owns its registry so several
// collectors never clash, e.g. in tests.
type Collector struct {
	registry *prometheus.Registry

	rounds   *prometheus.CounterVec
	reaction *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	scores   prometheus.Histogram
	sessions prometheus.Gauge
}

// New creates a collector with its metrics registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reflex",
			Name:      "rounds_total",
			Help:      "Rounds played by target gesture and outcome.",
		}, []string{"target", "outcome", "difficulty"}),
		reaction: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reflex",
			Name:      "reaction_seconds",
			Help:      "Time from the round prompt to the matching gesture.",
			Buckets:   []float64{0.1, 0.25, 0.5, 0.75, 1, 1.5, 2, 3, 5},
		}, []string{"target"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reflex",
			Name:      "runs_total",
			Help:      "Finished runs by result and difficulty.",
		}, []string{"result", "difficulty"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reflex",
			Name:      "run_score",
			Help:      "Final score of finished runs.",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "reflex",
			Name:      "sessions_active",
			Help:      "Connected remote play sessions.",
		}),
	}
	c.registry.MustRegister(c.rounds, c.reaction, c.runs, c.scores, c.sessions)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RoundFinished implements game.Recorder.
func (c *Collector) RoundFinished(r game.RoundRecord) error {
	outcome := "miss"
	switch {
	case r.Success():
		outcome = "success"
		c.reaction.WithLabelValues(r.Target.String()).Observe(r.Elapsed.Seconds())
	case r.Detected.String() != "NONE":
		outcome = "wrong"
	}
	c.rounds.WithLabelValues(r.Target.String(), outcome, r.Difficulty).Inc()
	return nil
}

// RunFinished implements game.Recorder.
func (c *Collector) RunFinished(r game.RunRecord) error {
	c.runs.WithLabelValues(r.Result(), r.Difficulty).Inc()
	c.scores.Observe(float64(r.Score))
	return nil
}

// SessionStarted counts a connected session.
func (c *Collector) SessionStarted() {
	c.sessions.Inc()
}

// SessionEnded counts a disconnected session.
func (c *Collector) SessionEnded() {
	c.sessions.Dec()
}

// Ensure Collector implements Recorder
var _ game.Recorder = (*Collector)(nil)
