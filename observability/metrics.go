package observability

import (
	"time"
	"toni/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toni_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "toni_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "route"},
	)

	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toni_ai_upstream_latency_seconds",
			Help:    "Chat completion latency in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		},
		[]string{"request_type", "outcome"},
	)

	Classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toni_secretary_classifications_total",
			Help: "Secretary classifications by expert and camera directive",
		},
		[]string{"expert", "camera_action"},
	)

	ClassifierFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "toni_secretary_fallbacks_total",
			Help: "Secretary replies that could not be parsed",
		},
	)

	RecorderDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "toni_recorder_dropped_events_total",
			Help: "Persistence events dropped because the queue was full",
		},
	)

	RecorderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toni_recorder_failures_total",
			Help: "Persistence events that failed to apply",
		},
		[]string{"event"},
	)

	RecorderQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "toni_recorder_queue_depth",
			Help: "Persistence events waiting to be applied",
		},
	)

	WorkerRestarts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toni_worker_restarts_total",
			Help: "Supervised worker restarts after a panic or an error",
		},
		[]string{"worker"},
	)

	ProcessRSS = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "toni_process_rss_bytes",
			Help: "Resident set size of the server process",
		},
	)

	ProcessCPU = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "toni_process_cpu_percent",
			Help: "CPU usage of the server process",
		},
	)
)

// ObserveUpstream records one chat completion call.
func ObserveUpstream(kind domain.RequestType, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamLatency.WithLabelValues(string(kind), outcome).Observe(time.Since(start).Seconds())
}
