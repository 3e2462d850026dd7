package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var defaultBuckets = []float64{0.05, 0.1, 0.3, 1.2, 5.0}

// Middleware wraps an http.Handler and observes its call durations.
type Middleware struct {
	histogram *prometheus.HistogramVec
}

func New(registry prometheus.Registerer, buckets []float64) *Middleware {
	if buckets == nil {
		buckets = defaultBuckets
	}

	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "How long it took to process the request, partitioned by status code, method and HTTP path.",
		Buckets: buckets,
	}, []string{"code", "method", "path"})
	registry.MustRegister(histogram)

	return &Middleware{
		histogram: histogram,
	}
}

func (m *Middleware) WrapHandler(handlerName string, handler http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		handler.ServeHTTP(rec, r)

		m.histogram.With(prometheus.Labels{
			"code":   strconv.Itoa(rec.statusCode),
			"method": r.Method,
			"path":   handlerName,
		}).Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
}
