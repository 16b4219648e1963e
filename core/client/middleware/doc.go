// Package middleware provides the built-in middleware for the generation
// client. Each middleware is constructed via a New* function that returns a
// [client.Middleware] ready to be passed to [client.WithMiddleware].
//
// # Available Middleware
//
//   - [NewRetryMiddleware]: Retries failed provider calls with exponential backoff
//     and jitter. Transient HTTP 429 / 5xx errors and per-attempt deadline
//     expiry are retried; authentication failures are not.
//
//   - [NewTimeoutMiddleware] and [NewGrowingTimeoutMiddleware]: Add a
//     per-attempt deadline via context.WithTimeout. The growing variant gives
//     each retry more time than the last, since long poems are slow to generate.
//
//   - [NewLoggingMiddleware]: Emits structured slog log entries before and after
//     every provider call, with three verbosity levels (Minimal, Standard, Verbose).
//
//   - [NewMetricsMiddleware]: Records request counts and latencies as
//     Prometheus metrics.
//
// # Usage
//
//	metrics, err := middleware.NewMetrics(prometheus.DefaultRegisterer)
//	if err != nil {
//	    return err
//	}
//
//	c, err := client.New(provider,
//	    client.WithMiddleware(
//	        middleware.NewRetryMiddleware(middleware.RetryConfig{MaxRetries: 3}),
//	        middleware.NewGrowingTimeoutMiddleware(180*time.Second, 60*time.Second),
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	        middleware.NewMetricsMiddleware(metrics),
//	    ),
//	)
//
// Middlewares execute outermost-first. The timeout sits inside the retry so
// that every attempt gets its own deadline, and logging and metrics sit inside
// both so that each attempt is observed:
//
//	Retry → Timeout → Logging → Metrics → Provider
package middleware
