package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "indicators_cache_hits_total",
		Help: "Top-coins responses served from the cache",
	})

	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "indicators_cache_misses_total",
		Help: "Top-coins requests that had to recompute",
	})

	UpstreamErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "indicators_upstream_errors_total",
		Help: "Failed exchange API calls",
	})

	CacheWriteErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "indicators_cache_write_errors_total",
		Help: "Failed cache writes (response still served)",
	})

	AggregationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "indicators_aggregation_seconds",
		Help:    "Time to assemble a full top-coins response on a cache miss",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		CacheHits,
		CacheMisses,
		UpstreamErrors,
		CacheWriteErrors,
		AggregationDuration,
	)
}
