package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// MutationCounter 资源写操作计数，resource: tryout|question，op: create|update|delete
	MutationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tryout_mutations_total",
			Help: "Total number of tryout and question mutations",
		},
		[]string{"resource", "op"},
	)

	ScoreRatio = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tryout_score_ratio",
			Help:    "Graded score divided by total points",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tryout_cache_lookups_total",
			Help: "Tryout detail cache lookups by result",
		},
		[]string{"result"},
	)

	initOnce sync.Once
)

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(MutationCounter)
		prometheus.MustRegister(ScoreRatio)
		prometheus.MustRegister(CacheLookups)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func RecordMutation(resource, op string) {
	MutationCounter.WithLabelValues(resource, op).Inc()
}

func ObserveScore(score, total int) {
	if total <= 0 {
		return
	}
	ScoreRatio.Observe(float64(score) / float64(total))
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
