package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tphummel/it_inventory/internal/report"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "it_inventory_http_requests_total",
			Help: "Total number of HTTP requests by method, route, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "it_inventory_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "it_inventory_http_requests_in_flight",
		Help: "Current number of HTTP requests being processed.",
	})
)

// scrapeTimeout bounds how long one scrape may spend reading the backend.
const scrapeTimeout = 5 * time.Second

// SnapshotSource is the subset of inventory.Inventory needed to collect
// inventory metrics.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (report.Snapshot, error)
}

// inventoryCollector is a custom Prometheus collector that reads every
// collection on each scrape.
type inventoryCollector struct {
	src             SnapshotSource
	recordsDesc     *prometheus.Desc
	peripheralsDesc *prometheus.Desc
}

// NewInventoryCollector returns a collector reporting record counts per
// collection and peripheral usage per category.
func NewInventoryCollector(src SnapshotSource) prometheus.Collector {
	return &inventoryCollector{
		src: src,
		recordsDesc: prometheus.NewDesc(
			"it_inventory_records",
			"Number of records stored, partitioned by collection.",
			[]string{"collection"},
			nil,
		),
		peripheralsDesc: prometheus.NewDesc(
			"it_inventory_peripherals",
			"Peripheral log entries by category and whether they are assigned.",
			[]string{"category", "state"},
			nil,
		),
	}
}

func (c *inventoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.recordsDesc
	ch <- c.peripheralsDesc
}

func (c *inventoryCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	s, err := c.src.Snapshot(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.recordsDesc, err)
		return
	}

	counts := []struct {
		collection string
		n          int
	}{
		{"pcs", len(s.PCs)},
		{"laptops", len(s.Laptops)},
		{"servers", len(s.Servers)},
		{"mouse-logs", len(s.MouseLogs)},
		{"keyboard-logs", len(s.KeyboardLogs)},
		{"ssd-logs", len(s.SSDLogs)},
	}
	for _, cnt := range counts {
		ch <- prometheus.MustNewConstMetric(c.recordsDesc, prometheus.GaugeValue, float64(cnt.n), cnt.collection)
	}

	for _, src := range s.PeripheralSources() {
		u := report.UsageRatio(src.Logs)
		ch <- prometheus.MustNewConstMetric(c.peripheralsDesc, prometheus.GaugeValue, float64(u.Used), src.Category, "used")
		ch <- prometheus.MustNewConstMetric(c.peripheralsDesc, prometheus.GaugeValue, float64(u.InStock), src.Category, "in_stock")
	}
}

// Register registers all metrics with reg. Call once at startup after the
// storage backend is open.
func Register(reg prometheus.Registerer, src SnapshotSource) {
	reg.MustRegister(
		// Standard Go runtime and process metrics
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),

		// HTTP service metrics
		httpRequestsTotal,
		httpRequestDuration,
		httpRequestsInFlight,

		// Application metrics
		NewInventoryCollector(src),
	)
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// responseWriter wraps http.ResponseWriter to capture the response status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware wraps an http.Handler to record HTTP metrics.
// pattern should be the route pattern string (e.g. "/api/v1/pcs/{id}")
// so the path label has bounded cardinality.
func Middleware(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			httpRequestsInFlight.Dec()
			status := strconv.Itoa(rw.status)
			httpRequestsTotal.WithLabelValues(r.Method, pattern, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(rw, r)
	})
}
