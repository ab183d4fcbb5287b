package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RowsSucceeded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "connect_updater",
		Name:      "rows_succeeded_total",
		Help:      "Rows whose security-profile update completed.",
	})
	RowsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "connect_updater",
		Name:      "rows_failed_total",
		Help:      "Rows that failed to resolve or update.",
	})
	RowsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "connect_updater",
		Name:      "rows_skipped_total",
		Help:      "Malformed or incomplete rows skipped without processing.",
	})
)

// Init registers collectors; call once from main.
func Init() {
	prometheus.MustRegister(RowsSucceeded, RowsFailed, RowsSkipped)
}

// Serve starts a /metrics server on the given addr (e.g., ":9090"). Non-blocking when run in goroutine.
func Serve(addr string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, nil)
}
