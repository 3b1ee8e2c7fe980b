// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the duckgate shim.
package observability

import "github.com/prometheus/client_golang/prometheus"

// UpstreamBuckets defines histogram buckets for chat round trips,
// ranging from 50ms to 60s.
var UpstreamBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

// Upstream stages.
const (
	StageHandshake = "handshake"
	StageChat      = "chat"
)

// Reassembly line kinds.
const (
	LineFragment    = "fragment"
	LineUnparseable = "unparseable"
)

var (
	// RequestsTotal counts all HTTP requests by method, status class, and route pattern.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckgate_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status", "route"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckgate_request_duration_seconds",
			Help:    "Request duration",
			Buckets: UpstreamBuckets,
		},
		[]string{"method", "route"},
	)

	// UpstreamRequestsTotal counts calls to the chat service per stage.
	// Status is the upstream HTTP status code, or "error" for transport failures.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckgate_upstream_requests_total",
			Help: "Upstream requests",
		},
		[]string{"stage", "status"},
	)

	// UpstreamLatency records upstream round-trip latency in seconds.
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckgate_upstream_latency_seconds",
			Help:    "Upstream latency",
			Buckets: UpstreamBuckets,
		},
		[]string{"stage"},
	)

	// ReassemblyLinesTotal counts considered stream lines by classification.
	ReassemblyLinesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckgate_reassembly_lines_total",
			Help: "Reassembled stream lines",
		},
		[]string{"kind"},
	)

	// PassthroughTotal counts responses where the raw upstream body was
	// returned because no fragment text could be extracted.
	PassthroughTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "duckgate_passthrough_total",
			Help: "Raw upstream passthrough responses",
		},
	)

	// AuthRejectedTotal counts requests rejected by the key validator.
	AuthRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "duckgate_auth_rejected_total",
			Help: "Authentication rejections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		UpstreamRequestsTotal,
		UpstreamLatency,
		ReassemblyLinesTotal,
		PassthroughTotal,
		AuthRejectedTotal,
	)
}
