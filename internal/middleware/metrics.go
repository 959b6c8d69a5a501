package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexopos_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nexopos_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// VentasRegistradas counts committed sales; anulaciones decrement nothing
	// here, they get their own counter so the ledger story stays visible.
	VentasRegistradas = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nexopos_ventas_registradas_total",
		Help: "Total number of committed sales",
	})
	VentasAnuladas = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nexopos_ventas_anuladas_total",
		Help: "Total number of reversed sales",
	})
	CotizacionesEmitidas = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nexopos_cotizaciones_emitidas_total",
		Help: "Total number of issued quotations",
	})
)

// Metrics records per-request counters and latency histograms.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
