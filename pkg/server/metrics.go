package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	outcomeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slotta_schedule_outcomes_total",
		Help: "Scheduling outcomes by terminal status.",
	}, []string{"status"})

	scheduleSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slotta_schedule_duration_seconds",
		Help:    "Wall time of one scheduling request, calendar fetch included.",
		Buckets: prometheus.DefBuckets,
	})

	rejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slotta_requests_rejected_total",
		Help: "Requests rejected before scheduling (rate limit, bad method, bad body).",
	})
)
