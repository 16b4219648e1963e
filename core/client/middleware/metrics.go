package middleware

import (
	"cmp"
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/leofalp/tangshi/core/client"
	"github.com/leofalp/tangshi/providers/ai"
)

// Outcome label values recorded by the metrics middleware.
const (
	OutcomeSuccess   = "success"
	OutcomeTruncated = "truncated"
	OutcomeTimeout   = "timeout"
	OutcomeHTTPError = "http_error"
	OutcomeError     = "error"
)

// Metrics holds the Prometheus collectors for provider calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg. Registering
// twice on the same registry reuses the collectors already there.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tangshi",
		Subsystem: "llm",
		Name:      "requests_total",
		Help:      "Provider calls by model and outcome.",
	}, []string{"model", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tangshi",
		Subsystem: "llm",
		Name:      "request_duration_seconds",
		Help:      "Provider call latency by model.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120, 180, 300},
	}, []string{"model"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &Metrics{requests: requests, duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	if err := reg.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return collector, err
	}

	return collector, nil
}

// NewMetricsMiddleware creates a middleware that counts every provider call
// by outcome and observes its latency.
func NewMetricsMiddleware(metrics *Metrics) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			model := cmp.Or(request.Model, "default")

			start := time.Now()
			response, err := next(ctx, request)
			metrics.duration.WithLabelValues(model).Observe(time.Since(start).Seconds())
			metrics.requests.WithLabelValues(model, outcomeOf(response, err)).Inc()

			return response, err
		}
	}
}

func outcomeOf(response *ai.ChatResponse, err error) string {
	var statusErr *ai.StatusError

	switch {
	case err == nil && response.Truncated():
		return OutcomeTruncated
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.As(err, &statusErr):
		return OutcomeHTTPError
	}

	return OutcomeError
}
