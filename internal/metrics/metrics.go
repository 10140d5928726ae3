// Package metrics exposes the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SweepOccurrencesCreated counts expenses materialized from recurring
	// templates by the startup sweep.
	SweepOccurrencesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tally",
		Subsystem: "sweep",
		Name:      "occurrences_created_total",
		Help:      "Expenses materialized from recurring templates.",
	})

	// NotificationsPublished counts due-today alerts handed to the notifier.
	NotificationsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tally",
		Subsystem: "notify",
		Name:      "published_total",
		Help:      "Due-today notifications published.",
	})

	// HTTPRequests counts API requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tally",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "API requests served.",
	}, []string{"method", "route", "status"})
)
