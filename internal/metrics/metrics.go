package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors the service records into.
type Metrics struct {
	Plays              *prometheus.CounterVec
	Rounds             *prometheus.CounterVec
	Simulations        prometheus.Counter
	Trials             prometheus.Counter
	SimulationDuration prometheus.Histogram
	Requests           *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Plays: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grape_plays_total",
				Help: "Interactive playthroughs by result",
			},
			[]string{"result"},
		),
		Rounds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grape_rounds_total",
				Help: "Rounds resolved during interactive play by result",
			},
			[]string{"result"},
		),
		Simulations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "grape_simulations_total",
				Help: "Statistics runs completed",
			},
		),
		Trials: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "grape_trials_total",
				Help: "Trials executed across all statistics runs",
			},
		),
		SimulationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "grape_simulation_duration_seconds",
				Help:    "Wall time of statistics runs",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grape_requests_total",
				Help: "API requests by transport, operation and status",
			},
			[]string{"transport", "operation", "status"},
		),
	}
	reg.MustRegister(m.Plays, m.Rounds, m.Simulations, m.Trials, m.SimulationDuration, m.Requests)
	return m
}

// ObservePlay records one playthrough and its rounds.
func (m *Metrics) ObservePlay(survived bool, rounds int) {
	if survived {
		m.Plays.WithLabelValues("survived").Inc()
		m.Rounds.WithLabelValues("survived").Add(float64(rounds))
		return
	}
	m.Plays.WithLabelValues("died").Inc()
	m.Rounds.WithLabelValues("survived").Add(float64(rounds - 1))
	m.Rounds.WithLabelValues("died").Inc()
}

// ObserveSimulation records one statistics run.
func (m *Metrics) ObserveSimulation(trials int, took time.Duration) {
	m.Simulations.Inc()
	m.Trials.Add(float64(trials))
	m.SimulationDuration.Observe(took.Seconds())
}

// ObserveRequest counts one API call.
func (m *Metrics) ObserveRequest(transport, operation, status string) {
	m.Requests.WithLabelValues(transport, operation, status).Inc()
}
