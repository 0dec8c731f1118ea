// Package metrics exposes game counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "daily_mystery"

var (
	GuessesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_total",
			Help:      "Accepted guesses by outcome",
		},
		[]string{"outcome"},
	)

	RejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Rejected operations by operation and reason",
		},
		[]string{"operation", "kind"},
	)

	SubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Community mysteries submitted",
		},
	)

	VotesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Votes cast on community mysteries",
		},
	)

	AchievementsUnlockedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "achievements_unlocked_total",
			Help:      "Achievements unlocked by id",
		},
		[]string{"achievement"},
	)

	RolloversTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_rollovers_total",
			Help:      "Sessions moved to a new daily mystery",
		},
	)

	ActivityClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "activity_clients",
			Help:      "Connected activity stream clients",
		},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"route", "method", "status"},
	)
)

// Register adds every collector to reg, along with the Go runtime collectors.
func Register(reg prometheus.Registerer) error {
	cs := []prometheus.Collector{
		GuessesTotal,
		RejectionsTotal,
		SubmissionsTotal,
		VotesTotal,
		AchievementsUnlockedTotal,
		RolloversTotal,
		ActivityClients,
		httpRequestDurationSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request.
func ObserveRequest(route, method string, status int, started time.Time) {
	httpRequestDurationSeconds.
		WithLabelValues(route, method, strconv.Itoa(status)).
		Observe(time.Since(started).Seconds())
}
