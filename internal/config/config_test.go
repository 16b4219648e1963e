package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate runs the test in an empty directory with no tangshi or OpenAI
// variables set.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_API_BASE_URL",
		"TANGSHI_LLM_API_KEY", "TANGSHI_LLM_BASE_URL", "TANGSHI_LLM_MODEL",
		"TANGSHI_LLM_MAX_RETRIES", "TANGSHI_STORE_DRIVER", "TANGSHI_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLM.BaseURL != "https://api.openai.com/v1" || cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Errorf("unexpected llm defaults: %+v", cfg.LLM)
	}
	if cfg.LLM.Timeout != 3*time.Minute || cfg.LLM.TimeoutStep != time.Minute || cfg.LLM.MaxRetries != 3 {
		t.Errorf("unexpected timeout defaults: %+v", cfg.LLM)
	}
	if cfg.Store.Driver != DriverSQLite || cfg.Store.Path != "tangshi.db" {
		t.Errorf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.Log.Level != "info" || cfg.Log.Middleware != "standard" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("OPENAI_API_BASE_URL", "https://relay.example.com/v1/")
	t.Setenv("TANGSHI_LLM_MODEL", "gpt-4")
	t.Setenv("TANGSHI_LLM_MAX_RETRIES", "5")
	t.Setenv("TANGSHI_STORE_DRIVER", "memory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.APIKey != "sk-openai" || cfg.LLM.BaseURL != "https://relay.example.com/v1" {
		t.Errorf("OpenAI variables not honoured: %+v", cfg.LLM)
	}
	if cfg.LLM.Model != "gpt-4" || cfg.LLM.MaxRetries != 5 || cfg.Store.Driver != DriverMemory {
		t.Errorf("TANGSHI variables not honoured: %+v", cfg)
	}

	t.Setenv("TANGSHI_LLM_API_KEY", "sk-tangshi")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.APIKey != "sk-tangshi" {
		t.Errorf("TANGSHI_LLM_API_KEY should win over OPENAI_API_KEY, got %q", cfg.LLM.APIKey)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TANGSHI_LLM_API_KEY=sk-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("TANGSHI_LLM_API_KEY") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.APIKey != "sk-dotenv" {
		t.Errorf("APIKey = %q, want sk-dotenv", cfg.LLM.APIKey)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "tangshi.yaml")
	content := `
llm:
  model: gemini-3-pro-preview
  temperature: 0.3
  timeout: 90s
store:
  driver: redis
  redis_addr: cache:6379
  redis_ttl: 24h
log:
  format: json
  middleware: verbose
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Model != "gemini-3-pro-preview" || cfg.LLM.Temperature != 0.3 || cfg.LLM.Timeout != 90*time.Second {
		t.Errorf("unexpected llm: %+v", cfg.LLM)
	}
	if cfg.Store.Driver != DriverRedis || cfg.Store.RedisAddr != "cache:6379" || cfg.Store.RedisTTL != 24*time.Hour {
		t.Errorf("unexpected store: %+v", cfg.Store)
	}
	if cfg.Log.Format != "json" || cfg.Log.Middleware != "verbose" {
		t.Errorf("unexpected log: %+v", cfg.Log)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"temperature", func(c *Config) { c.LLM.Temperature = 3 }, "llm.temperature"},
		{"timeout", func(c *Config) { c.LLM.Timeout = 0 }, "llm.timeout"},
		{"retries", func(c *Config) { c.LLM.MaxRetries = -1 }, "llm.max_retries"},
		{"driver", func(c *Config) { c.Store.Driver = "postgres" }, "store.driver"},
		{"sqlite path", func(c *Config) { c.Store.Path = "" }, "store.path"},
		{"redis addr", func(c *Config) { c.Store.Driver, c.Store.RedisAddr = DriverRedis, "" }, "store.redis_addr"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"middleware", func(c *Config) { c.Log.Middleware = "chatty" }, "log.middleware"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if err := base.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}
