package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/leofalp/tangshi/core/client"
	"github.com/leofalp/tangshi/core/client/middleware"
	"github.com/leofalp/tangshi/internal/config"
	"github.com/leofalp/tangshi/internal/logging"
	"github.com/leofalp/tangshi/providers/ai/openai"
	"github.com/leofalp/tangshi/providers/store"
	"github.com/leofalp/tangshi/providers/store/inmemory"
	"github.com/leofalp/tangshi/providers/store/redisstore"
	"github.com/leofalp/tangshi/providers/store/sqlitestore"
)

// environment is what every model or store backed command needs.
type environment struct {
	cfg    *config.Config
	logger *slog.Logger
}

func addConfigFlag(fs *pflag.FlagSet) *string {
	return fs.String("config", "", "path to a YAML, JSON or TOML config file")
}

func loadEnvironment(configFile string, stderr io.Writer) (*environment, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(stderr, level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	return &environment{cfg: cfg, logger: logger}, nil
}

// openStore returns the configured session store and a function releasing it.
func (e *environment) openStore(ctx context.Context) (store.Store, func() error, error) {
	sc := e.cfg.Store

	switch sc.Driver {
	case config.DriverMemory:
		return inmemory.New(), func() error { return nil }, nil
	case config.DriverSQLite:
		st, err := sqlitestore.Open(ctx, sc.Path)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	case config.DriverRedis:
		rdb, err := redisstore.Dial(ctx, sc.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.New(rdb, redisstore.WithPrefix(sc.RedisPrefix), redisstore.WithTTL(sc.RedisTTL)), rdb.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", sc.Driver)
}

// newClient builds the model client with the middleware chain
// Retry -> Timeout -> Logging -> Metrics -> provider.
func (e *environment) newClient(reg prometheus.Registerer) (*client.Client, error) {
	lc := e.cfg.LLM

	provider := openai.New().
		WithAPIKey(lc.APIKey).
		WithBaseURL(lc.BaseURL).
		WithModel(lc.Model).
		WithTemperature(float64(lc.Temperature))

	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	var chain []client.Middleware
	if lc.MaxRetries > 0 {
		chain = append(chain, middleware.NewRetryMiddleware(middleware.RetryConfig{MaxRetries: lc.MaxRetries}))
	}
	chain = append(chain,
		middleware.NewGrowingTimeoutMiddleware(lc.Timeout, lc.TimeoutStep),
		middleware.NewLoggingMiddleware(e.logger, logLevelOf(e.cfg.Log.Middleware)),
		middleware.NewMetricsMiddleware(metrics),
	)

	return client.New(provider,
		client.WithModel(lc.Model),
		client.WithTemperature(lc.Temperature),
		client.WithMaxTokens(lc.MaxTokens),
		client.WithMiddleware(chain...),
	)
}

func logLevelOf(name string) middleware.LogLevel {
	switch name {
	case "minimal":
		return middleware.LogLevelMinimal
	case "verbose":
		return middleware.LogLevelVerbose
	}
	return middleware.LogLevelStandard
}
