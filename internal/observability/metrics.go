// Package observability provides metrics and tracing facilities for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "buddyboost_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CheckinsTotal counts challenge check-ins by outcome.
	CheckinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "buddyboost_challenge_checkins_total",
		Help: "Total number of challenge check-ins by outcome",
	}, []string{"outcome"})

	// XPAwardedTotal counts experience points awarded on challenge completion.
	XPAwardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buddyboost_xp_awarded_total",
		Help: "Total experience points awarded to users",
	})

	// FeedConnectionsTotal is the gauge of active feed WebSocket connections.
	FeedConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "buddyboost_feed_connections_total",
		Help: "Number of active feed WebSocket connections",
	})

	// FeedEventsTotal counts feed events published by type.
	FeedEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "buddyboost_feed_events_total",
		Help: "Total feed events published by type",
	}, []string{"event_type"})
)
