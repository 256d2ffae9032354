package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AggregatorMetrics holds all Prometheus metrics for the event feed service.
type AggregatorMetrics struct {
	ProviderRequests    *prometheus.CounterVec
	ProviderEvents      *prometheus.CounterVec
	AggregationDuration prometheus.Histogram
	FeedEventsReturned  prometheus.Histogram
	FeedCacheHits       prometheus.Counter
	FeedCacheMisses     prometheus.Counter
}

// NewAggregatorMetrics initializes and registers the Prometheus metrics.
func NewAggregatorMetrics() *AggregatorMetrics {
	return &AggregatorMetrics{
		ProviderRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "event_aggregator",
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Total number of provider fetches by outcome.",
		}, []string{"provider", "status"}), // status: ok, error, skipped
		ProviderEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "event_aggregator",
			Subsystem: "provider",
			Name:      "events_fetched_total",
			Help:      "Total number of normalized events fetched per provider.",
		}, []string{"provider"}),
		AggregationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "event_aggregator",
			Subsystem: "feed",
			Name:      "aggregation_duration_seconds",
			Help:      "End-to-end latency of combined feed aggregation.",
			Buckets:   prometheus.DefBuckets,
		}),
		FeedEventsReturned: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "event_aggregator",
			Subsystem: "feed",
			Name:      "events_returned",
			Help:      "Number of events returned per aggregated feed.",
			Buckets:   []float64{0, 5, 10, 25, 50, 75, 100},
		}),
		FeedCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "event_aggregator",
			Subsystem: "feed",
			Name:      "cache_hits_total",
			Help:      "Total number of aggregated feed cache hits.",
		}),
		FeedCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "event_aggregator",
			Subsystem: "feed",
			Name:      "cache_misses_total",
			Help:      "Total number of aggregated feed cache misses.",
		}),
	}
}
