package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/leofalp/tangshi/core/client"
	"github.com/leofalp/tangshi/core/extract"
	"github.com/leofalp/tangshi/game"
)

func runGenerate(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := addConfigFlag(fs)
	prompt := fs.String("prompt", "", "user prompt; read from stdin when empty")
	system := fs.String("system", "", "system prompt")
	kindName := fs.String("kind", "", "payload kind to validate and decode ("+kindList()+")")
	sessionID := fs.String("session", "", "apply the payload to this saved session")
	format := fs.String("format", "五言绝句", "poem format recorded for a completion payload")
	lenient := fs.Bool("lenient", false, "fall back to aggressive repair when the strict stages fail")
	metricsFile := fs.String("metrics-file", "", "write Prometheus metrics to this file when done")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	var kind game.Kind
	if *kindName != "" {
		k, err := game.ParseKind(*kindName)
		if err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		kind = k
	}
	if *sessionID != "" && kind == "" {
		return fmt.Errorf("%w: --session requires --kind", errUsage)
	}

	if *prompt == "" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return err
		}
		*prompt = strings.TrimSpace(string(raw))
	}

	env, err := loadEnvironment(*configFile, stderr)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	c, err := env.newClient(reg)
	if err != nil {
		return err
	}
	if *metricsFile != "" {
		defer func() {
			if err := prometheus.WriteToTextfile(*metricsFile, reg); err != nil {
				env.logger.Warn("failed to write metrics", "path", *metricsFile, "error", err)
			}
		}()
	}

	var opts []extract.Option
	if *lenient || env.cfg.LLM.Lenient {
		opts = append(opts, extract.WithLenientFallback())
	}

	result, err := client.GenerateJSON(ctx, c, *prompt, *system, opts...)
	if err != nil {
		return err
	}
	env.logger.Debug("extracted model reply", "stage", result.Stage)

	if kind == "" {
		_, err = fmt.Fprintln(stdout, result.Text)
		return err
	}

	payload, err := decodeKind(kind, result.Value)
	if err != nil {
		return err
	}

	if *sessionID != "" {
		if err := applyToSession(ctx, env, *sessionID, payload, *format); err != nil {
			return err
		}
	}

	return writeJSON(stdout, payload)
}

func applyToSession(ctx context.Context, env *environment, id string, payload any, format string) error {
	err := withSession(ctx, env, id, true, func(s *game.Session) error {
		if completion, ok := payload.(game.PoemCompletion); ok {
			s.ApplyCompletion(completion, format)
			return nil
		}
		return s.Apply(payload)
	})
	if err != nil {
		return err
	}

	env.logger.Info("session updated", "session", id)
	return nil
}
