package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled requests by transport, operation and status code.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinestats_requests_total",
			Help: "Total number of handled requests",
		},
		[]string{"kind", "operation", "code"},
	)

	// RequestDuration tracks request latency by transport and operation.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinestats_request_duration_seconds",
			Help:    "Duration of handled requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"kind", "operation"},
	)
)

// MetricsMiddleware records count and latency of every request
func MetricsMiddleware() middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			tr, ok := transport.FromServerContext(ctx)
			if !ok {
				return handler(ctx, req)
			}

			start := time.Now()
			reply, err := handler(ctx, req)

			code := 200
			if err != nil {
				code = int(errors.FromError(err).Code)
			}
			kind := tr.Kind().String()
			RequestsTotal.WithLabelValues(kind, tr.Operation(), statusText(code)).Inc()
			RequestDuration.WithLabelValues(kind, tr.Operation()).Observe(time.Since(start).Seconds())
			return reply, err
		}
	}
}

func statusText(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}
