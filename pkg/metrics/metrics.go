package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	RecomputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_recomputations_total",
			Help: "Total number of filter and aggregation passes",
		},
		[]string{"service", "operation"},
	)

	AnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_answers_total",
			Help: "Total number of assistant answers by source",
		},
		[]string{"service", "source"},
	)

	RemoteAnswerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_remote_duration_seconds",
			Help:    "Remote answering call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)

	DatasetRowsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Number of rows in the current dataset snapshot",
		},
		[]string{"service", "dataset"},
	)

	DatasetReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_reloads_total",
			Help: "Total number of dataset loads",
		},
		[]string{"service", "dataset", "status"},
	)

	SummaryCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_cache_requests_total",
			Help: "Total number of summary cache lookups",
		},
		[]string{"service", "result"},
	)

	ActiveSessionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "assistant_sessions_active",
			Help: "Current number of chat sessions",
		},
		[]string{"service"},
	)

	WebSocketConnectionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_connections_total",
			Help: "Current number of active WebSocket connections",
		},
		[]string{"service"},
	)

	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"service", "operation", "status"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	RabbitMQMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_published_total",
			Help: "Total number of messages published to RabbitMQ",
		},
		[]string{"service", "queue", "status"},
	)

	RabbitMQMessagesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_consumed_total",
			Help: "Total number of messages consumed from RabbitMQ",
		},
		[]string{"service", "queue", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordDatabaseQuery records database query metrics
func RecordDatabaseQuery(service, operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DatabaseQueriesTotal.WithLabelValues(service, operation, status).Inc()
	DatabaseQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordRabbitMQPublish records RabbitMQ publish metrics
func RecordRabbitMQPublish(service, queue string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RabbitMQMessagesPublished.WithLabelValues(service, queue, status).Inc()
}

// RecordRabbitMQConsume records RabbitMQ consume metrics
func RecordRabbitMQConsume(service, queue string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RabbitMQMessagesConsumed.WithLabelValues(service, queue, status).Inc()
}

// RecordRemoteAnswer records a remote answering call
func RecordRemoteAnswer(service string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RemoteAnswerDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

// RecordDatasetLoad records a dataset load attempt and the resulting row count
func RecordDatasetLoad(service, dataset string, rows int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	} else {
		DatasetRowsGauge.WithLabelValues(service, dataset).Set(float64(rows))
	}
	DatasetReloadsTotal.WithLabelValues(service, dataset, status).Inc()
}

// RecordCacheLookup records a summary cache hit, miss or error
func RecordCacheLookup(service string, hit bool, err error) {
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	SummaryCacheRequests.WithLabelValues(service, result).Inc()
}
