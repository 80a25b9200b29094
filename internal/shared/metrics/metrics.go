// Package metrics records resume generation and HTTP metrics on a private
// Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resume"

// Recorder owns the collectors. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	generated          *prometheus.CounterVec
	generationFailed   *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	documentBytes      *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)
	return &Recorder{
		registry: registry,
		generated: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generated_total",
			Help:      "Resumes generated, by variant.",
		}, []string{"variant"}),
		generationFailed: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_failed_total",
			Help:      "Resume generations that failed, by variant and reason.",
		}, []string{"variant", "reason"}),
		generationDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time from submission to stored document.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"variant"}),
		documentBytes: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_size_bytes",
			Help:      "Size of generated documents.",
			Buckets:   prometheus.ExponentialBuckets(2048, 2, 8),
		}, []string{"variant"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
	}
}

// Registry exposes the underlying registry for tests and custom collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Generated records a stored resume.
func (r *Recorder) Generated(variant string, took time.Duration, size int64) {
	if r == nil {
		return
	}
	r.generated.WithLabelValues(variant).Inc()
	r.generationDuration.WithLabelValues(variant).Observe(took.Seconds())
	if size >= 0 {
		r.documentBytes.WithLabelValues(variant).Observe(float64(size))
	}
}

// GenerationFailed records a failed generation. Reason should be a short,
// bounded value such as "invalid_input" or "storage".
func (r *Recorder) GenerationFailed(variant, reason string) {
	if r == nil {
		return
	}
	r.generationFailed.WithLabelValues(variant, reason).Inc()
}

// Middleware counts requests by matched route.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if r == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes metrics in Prometheus text format.
func (r *Recorder) Handler() gin.HandlerFunc {
	if r == nil {
		return func(c *gin.Context) {
			c.Status(http.StatusNotFound)
		}
	}
	h := promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
