package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hrms_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	leaveTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_leave_transitions_total",
		Help: "Leave ledger transitions by kind and leave type",
	}, []string{"transition", "leave_type"})

	outboxPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_outbox_events_total",
		Help: "Outbox events handled by the publisher, by result",
	}, []string{"event_type", "result"})

	notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_notifications_total",
		Help: "Notification deliveries by kind and result",
	}, []string{"kind", "result"})
)

func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveLeaveTransition counts apply, approve, reject and delete.
func ObserveLeaveTransition(transition, leaveType string) {
	leaveTransitions.WithLabelValues(transition, leaveType).Inc()
}

func ObserveOutbox(eventType, result string) {
	outboxPublished.WithLabelValues(eventType, result).Inc()
}

func ObserveNotification(kind, result string) {
	notificationsSent.WithLabelValues(kind, result).Inc()
}
