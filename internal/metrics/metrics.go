package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests processed, by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_uploads_total",
		Help: "Asset uploads by kind and outcome.",
	}, []string{"kind", "outcome"})

	resumeRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_url_refresh_total",
		Help: "Signed URL refreshes performed while serving resume info.",
	}, []string{"outcome"})

	registerOnce sync.Once
)

// InitMetrics registers the collectors with the default registry. Safe to call repeatedly.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requestsTotal, requestDuration, uploadsTotal, resumeRefreshTotal)
	})
}

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordUpload counts one upload attempt of the given kind.
func RecordUpload(kind, outcome string) {
	uploadsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordResumeRefresh counts one signed URL refresh attempt.
func RecordResumeRefresh(outcome string) {
	resumeRefreshTotal.WithLabelValues(outcome).Inc()
}
