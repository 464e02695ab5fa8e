package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intranet_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intranet_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intranet_session_tokens_issued_total",
			Help: "Total number of session tokens issued at login",
		},
	)

	TokensSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intranet_session_tokens_superseded_total",
			Help: "Total number of valid tokens invalidated by a newer login",
		},
	)

	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intranet_auth_failures_total",
			Help: "Total number of rejected bearer tokens by reason",
		},
		[]string{"reason"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intranet_login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	ScheduleConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intranet_schedule_conflicts_total",
			Help: "Total number of timeslot writes rejected for overlapping an existing one",
		},
	)
)
