package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// MetadataRequestsTotal counts outbound metadata API requests by operation and outcome.
	MetadataRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_requests_total",
			Help: "Total number of metadata API requests.",
		},
		[]string{"operation", "status"},
	)

	// StreamResolutionsTotal counts stream resolution attempts by server and outcome.
	StreamResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_resolutions_total",
			Help: "Total number of stream resolution attempts.",
		},
		[]string{"server", "outcome"},
	)

	// ResolutionDuration observes the wall-clock time of stream resolution attempts.
	ResolutionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stream_resolution_duration_seconds",
			Help:    "Wall-clock duration of stream resolution attempts.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"server"},
	)
)

func init() {
	prometheus.MustRegister(
		MetadataRequestsTotal,
		StreamResolutionsTotal,
		ResolutionDuration,
	)
}
