// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Record store metrics
	RecordStoreLoads   *prometheus.CounterVec
	RecordStoreRows    prometheus.Gauge
	LastSuccessfulLoad prometheus.Gauge
	ListingsImported   *prometheus.CounterVec

	// Dashboard metrics
	DashboardComputations *prometheus.CounterVec
	DashboardDuration     prometheus.Histogram
	FilteredRows          prometheus.Gauge
	TrimmedRows           prometheus.Gauge
	ViewCacheLookups      *prometheus.CounterVec
	ReportsGenerated      *prometheus.CounterVec

	// Transport metrics
	HTTPRequests *prometheus.CounterVec
	WSSessions   prometheus.Gauge
	WSFramesSent *prometheus.CounterVec

	// Database metrics
	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	MigrationsApplied *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "vehicle_market_lab"
	}

	return &Metrics{
		// Record store metrics
		RecordStoreLoads: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recordstore",
			Name:      "loads_total",
			Help:      "Total number of record store loads by result",
		}, []string{"result"}),
		RecordStoreRows: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "recordstore",
			Name:      "rows",
			Help:      "Number of listings in the loaded record store",
		}),
		LastSuccessfulLoad: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_load_timestamp",
			Help:      "Unix timestamp of last successful record store load",
		}),
		ListingsImported: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "listings_total",
			Help:      "Total number of listings imported by target",
		}, []string{"target"}),

		// Dashboard metrics
		DashboardComputations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "computations_total",
			Help:      "Total number of dashboard computations by status",
		}, []string{"status"}),
		DashboardDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "compute_duration_seconds",
			Help:      "Dashboard computation duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		FilteredRows: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "filtered_rows",
			Help:      "Rows selected by the most recent filter",
		}),
		TrimmedRows: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "trimmed_rows",
			Help:      "Rows kept after the price trim of the most recent filter",
		}),
		ViewCacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "view_cache_lookups_total",
			Help:      "Total number of view cache lookups by backend and result",
		}, []string{"backend", "result"}),
		ReportsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated by format",
		}, []string{"format"}),

		// Transport metrics
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of API requests by route and status code",
		}, []string{"route", "code"}),
		WSSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "sessions",
			Help:      "Number of open websocket sessions",
		}),
		WSFramesSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "frames_sent_total",
			Help:      "Total number of websocket frames sent by type",
		}, []string{"type"}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
		MigrationsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "migrations_total",
			Help:      "Total number of migration files applied by database and result",
		}, []string{"database", "result"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordStoreLoad records a record store load attempt.
// rows is ignored for failed loads.
func RecordStoreLoad(ok bool, rows int) {
	if !ok {
		DefaultMetrics.RecordStoreLoads.WithLabelValues("error").Inc()
		return
	}
	DefaultMetrics.RecordStoreLoads.WithLabelValues("ok").Inc()
	DefaultMetrics.RecordStoreRows.Set(float64(rows))
	DefaultMetrics.LastSuccessfulLoad.Set(float64(time.Now().Unix()))
}

// RecordImport records listings written to an import target.
func RecordImport(target string, n int) {
	DefaultMetrics.ListingsImported.WithLabelValues(target).Add(float64(n))
}

// RecordDashboard records a dashboard computation.
func RecordDashboard(status string, durationSeconds float64, filtered, trimmed int) {
	DefaultMetrics.DashboardComputations.WithLabelValues(status).Inc()
	DefaultMetrics.DashboardDuration.Observe(durationSeconds)
	if status == "ok" {
		DefaultMetrics.FilteredRows.Set(float64(filtered))
		DefaultMetrics.TrimmedRows.Set(float64(trimmed))
	}
}

// RecordViewCache records a view cache lookup.
func RecordViewCache(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	DefaultMetrics.ViewCacheLookups.WithLabelValues(backend, result).Inc()
}

// RecordReport records a generated report.
func RecordReport(format string) {
	DefaultMetrics.ReportsGenerated.WithLabelValues(format).Inc()
}

// RecordHTTPRequest records a served API request.
func RecordHTTPRequest(route string, code int) {
	DefaultMetrics.HTTPRequests.WithLabelValues(route, httpCode(code)).Inc()
}

// WSSessionOpened increments the open session gauge.
func WSSessionOpened() {
	DefaultMetrics.WSSessions.Inc()
}

// WSSessionClosed decrements the open session gauge.
func WSSessionClosed() {
	DefaultMetrics.WSSessions.Dec()
}

// RecordWSFrame records a websocket frame sent to a client.
func RecordWSFrame(frameType string) {
	DefaultMetrics.WSFramesSent.WithLabelValues(frameType).Inc()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordMigration counts one migration file applied against database.
func RecordMigration(database string, seconds float64, err error) {
	RecordDBQuery(database, "migrate", seconds, err)
	result := "ok"
	if err != nil {
		result = "error"
	}
	DefaultMetrics.MigrationsApplied.WithLabelValues(database, result).Inc()
}

func httpCode(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
