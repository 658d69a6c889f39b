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
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ensayos_submissions_total",
			Help: "Graded exam submissions",
		},
		[]string{"exam_id"},
	)

	SubmissionItemErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ensayos_submission_item_errors_total",
			Help: "Answer items rejected while grading submissions",
		},
	)

	SubmissionScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ensayos_submission_score",
			Help:    "Distribution of submission scores (0-1000)",
			Buckets: prometheus.LinearBuckets(0, 100, 11),
		},
	)
)

var initOnce sync.Once

// Init registers every collector with the default registry. Calling it again is a no-op.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			SubmissionCounter,
			SubmissionItemErrors,
			SubmissionScore,
		)
	})
}

// ObserveSubmission records one graded submission.
func ObserveSubmission(examID uint, score int, itemErrors int) {
	SubmissionCounter.WithLabelValues(strconv.FormatUint(uint64(examID), 10)).Inc()
	SubmissionScore.Observe(float64(score))
	if itemErrors > 0 {
		SubmissionItemErrors.Add(float64(itemErrors))
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
