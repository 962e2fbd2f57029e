package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"detector-go/modules"
)

var TotalRequestCounter = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "total_request",
	Help: "Total request count",
})

func init() {
	prometheus.MustRegister(TotalRequestCounter)
	prometheus.MustRegister(modules.ReportsPublished)
}

// registerCounters wires the DB-backed gauges once the store is up.
func registerCounters(players *modules.PlayerDirectory, feedback *modules.FeedbackModule) {
	prometheus.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "player_count",
		Help: "Count of known players",
	}, func() float64 {
		count, err := players.Count(context.Background())
		if err != nil {
			return 0
		}
		return float64(count)
	}))

	prometheus.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "feedback_count",
		Help: "Count of recorded feedback votes",
	}, func() float64 {
		count, err := feedback.Count(context.Background())
		if err != nil {
			return 0
		}
		return float64(count)
	}))
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		TotalRequestCounter.Inc()
		next.ServeHTTP(w, r)
	})
}
