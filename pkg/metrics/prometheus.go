package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FetchesTotal    prometheus.Counter
	FetchDuration   prometheus.Histogram
	SubmitsTotal    *prometheus.CounterVec
	RequestsDrained prometheus.Counter
	QueueDepth      prometheus.Gauge
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FetchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_fetches_total",
			Help:      "The total number of flight list fetches from the remote feed",
		}),
		FetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flight_fetch_duration_seconds",
			Help:      "Time taken to fetch the flight list",
			Buckets:   prometheus.DefBuckets,
		}),
		SubmitsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inquiry_submits_total",
			Help:      "The total number of flight-info submissions by outcome",
		}, []string{"outcome"}),
		RequestsDrained: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_drained_total",
			Help:      "The total number of queued requests delivered after reconnect",
		}),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "request_queue_depth",
			Help:      "The current number of pending requests in the local store",
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
