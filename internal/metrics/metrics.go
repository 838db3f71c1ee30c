// internal/metrics/metrics.go
//
// Prometheus instruments for rounds and submissions. Registered on the
// default registry and exposed by the HTTP server at /metrics.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RoundsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordgrid_rounds_started_total",
			Help: "Rounds started, by mode",
		},
		[]string{"mode"},
	)
	RoundsFinished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordgrid_rounds_finished_total",
			Help: "Rounds that ran out of time",
		},
	)
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordgrid_submissions_total",
			Help: "Word submissions, by result",
		},
		[]string{"result"},
	)
	FinalScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wordgrid_final_score",
			Help:    "Score of finished rounds",
			Buckets: []float64{-10, 0, 5, 10, 20, 40, 80},
		},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wordgrid_active_sessions",
			Help: "Sessions currently held in memory",
		},
	)
)

func init() {
	prometheus.MustRegister(RoundsStarted)
	prometheus.MustRegister(RoundsFinished)
	prometheus.MustRegister(Submissions)
	prometheus.MustRegister(FinalScores)
	prometheus.MustRegister(ActiveSessions)
}

// Result labels for Submissions.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultReplayed = "replayed"
)

// ObserveSubmission counts one submission.
func ObserveSubmission(accepted, replayed bool) {
	switch {
	case accepted:
		Submissions.WithLabelValues(ResultAccepted).Inc()
	case replayed:
		Submissions.WithLabelValues(ResultReplayed).Inc()
	default:
		Submissions.WithLabelValues(ResultRejected).Inc()
	}
}

// ObserveFinish records a finished round's score.
func ObserveFinish(score int) {
	RoundsFinished.Inc()
	FinalScores.Observe(float64(score))
}
