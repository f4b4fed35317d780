package workspace

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// unitsParsedTotal counts parsed script files.
	//
	// Labels:
	//   - result: "ok", "diagnostics" (parsed with syntax errors), "error" (unreadable)
	unitsParsedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zentype",
			Subsystem: "workspace",
			Name:      "units_parsed_total",
			Help:      "Total script files parsed, by result",
		},
		[]string{"result"},
	)

	// parseSeconds tracks how long reading and binding a single file takes.
	parseSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "zentype",
			Subsystem: "workspace",
			Name:      "parse_seconds",
			Help:      "Time to read, parse and bind one script file",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// reloadsTotal counts environment updates made by the watcher.
	//
	// Labels:
	//   - op: "replace" or "remove"
	reloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zentype",
			Subsystem: "workspace",
			Name:      "reloads_total",
			Help:      "Total units replaced or removed after file changes",
		},
		[]string{"op"},
	)
)

// recordParse records one parsed file
func recordParse(result string, elapsed time.Duration) {
	unitsParsedTotal.WithLabelValues(result).Inc()
	parseSeconds.Observe(elapsed.Seconds())
}

// recordReload records one watcher-driven environment update
func recordReload(op string) {
	reloadsTotal.WithLabelValues(op).Inc()
}
