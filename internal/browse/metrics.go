package browse

import "github.com/prometheus/client_golang/prometheus"

var (
	refreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orchids_browse_refreshes_total",
			Help: "Total browse refresh cycles",
		},
		[]string{"status"},
	)
	refreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orchids_browse_refresh_duration_seconds",
			Help:    "Time to rebuild the shelves",
			Buckets: prometheus.DefBuckets,
		},
	)
	shelfSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orchids_browse_shelf_records",
			Help: "Records currently on each shelf",
		},
		[]string{"shelf"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(refreshes, refreshDuration, shelfSize)
}
