package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)

	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	ChangeEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "change_events_published_total",
			Help: "Total number of change events published to the broker",
		},
		[]string{"routing_key", "status"}, // status: success, failed
	)

	ChangeEventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "change_events_consumed_total",
			Help: "Total number of change events consumed by the worker",
		},
		[]string{"routing_key", "outcome"}, // outcome: processed, duplicate, dropped, requeued
	)

	ProgressRecomputeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_progress_recompute_total",
			Help: "Total number of project progress recomputations",
		},
		[]string{"trigger"}, // trigger: task_changed
	)

	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_query_total",
			Help: "Total number of statements exceeding the slow-query threshold",
		},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordDBQueryDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

func IncrementChangeEventPublished(routingKey, status string) {
	ChangeEventsPublished.WithLabelValues(routingKey, status).Inc()
}

func IncrementChangeEventConsumed(routingKey, outcome string) {
	ChangeEventsConsumed.WithLabelValues(routingKey, outcome).Inc()
}

func IncrementProgressRecompute(trigger string) {
	ProgressRecomputeCount.WithLabelValues(trigger).Inc()
}

func IncrementSlowQuery() {
	SlowQueryCount.Inc()
}
