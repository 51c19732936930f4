package middleware

import (
	"net/http"
	"sync/atomic"
)

// MetricsCollector increments the request and error counters the App
// exposes on its metrics endpoint. The App owns the counters; the
// middleware only writes to them.
type MetricsCollector struct {
	requests *atomic.Int64
	errors   *atomic.Int64
}

func NewMetricsCollector(requests, errors *atomic.Int64) *MetricsCollector {
	return &MetricsCollector{requests: requests, errors: errors}
}

// Middleware counts every request, and counts a request as an error
// when the handler responds with a 4xx or 5xx status.
func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.requests.Add(1)

		sr := recordStatus(w)
		next.ServeHTTP(sr, r)

		if sr.status >= http.StatusBadRequest {
			mc.errors.Add(1)
		}
	})
}
