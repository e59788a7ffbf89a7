package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	ratelimiter "authflow/internal/core/domain/rate_limiter"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess      = "success"
	OutcomeInvalidToken = "invalid_token"
	OutcomeRateLimited  = "rate_limited"
	OutcomeCanceled     = "canceled"
	OutcomeError        = "error"
)

type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	outcomes        *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authflow_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"status", "method", "route"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "authflow_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authflow_operation_outcomes_total",
				Help: "Total number of use case runs by outcome",
			},
			[]string{"operation", "outcome"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.outcomes,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency labelled by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(rw, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		m.requests.WithLabelValues(strconv.Itoa(status), r.Method, route).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) RecordOutcome(operation string, err error) {
	m.outcomes.WithLabelValues(operation, Outcome(err)).Inc()
}

func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, user.ErrInvalidOrExpiredPasswordResetToken):
		return OutcomeInvalidToken
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		return OutcomeRateLimited
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "unmatched"
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return "unmatched"
}

type serviceWithOutcomes[T any, S any] struct {
	metrics   *Metrics
	operation string
	inner     services.Service[T, S]
}

func WithOutcomes[T any, S any](
	metrics *Metrics,
	operation string,
	inner services.Service[T, S],
) services.Service[T, S] {
	return &serviceWithOutcomes[T, S]{metrics: metrics, operation: operation, inner: inner}
}

func (s *serviceWithOutcomes[T, S]) Run(ctx context.Context, input T) (S, error) {
	result, err := s.inner.Run(ctx, input)
	s.metrics.RecordOutcome(s.operation, err)
	return result, err
}
