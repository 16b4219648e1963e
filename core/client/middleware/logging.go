package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/leofalp/tangshi/core/client"
	"github.com/leofalp/tangshi/internal/utils"
	"github.com/leofalp/tangshi/providers/ai"
)

// LogLevel controls how much detail the logging middleware emits per request.
type LogLevel int

const (
	// LogLevelMinimal logs only the model name, total duration, and token counts.
	// Use this when you want lightweight audit trails without noise.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard logs everything in Minimal plus the attempt number,
	// message count and finish reason. This is the recommended default.
	LogLevelStandard

	// LogLevelVerbose logs everything in Standard plus the prompt and the full
	// response content, each truncated to 500 characters.
	//
	// WARNING: DO NOT use LogLevelVerbose in production. It logs raw prompt
	// and response text. It is intended solely for local debugging of
	// malformed model output.
	LogLevelVerbose
)

// truncateLen is the maximum content length included in verbose log output.
const truncateLen = 500

// NewLoggingMiddleware creates a middleware that emits structured slog log
// entries before and after every provider call. A response cut off by the
// token limit is logged at warning level because its content will need
// truncation recovery.
//
// The logger parameter must not be nil. Use slog.Default() if you have not
// configured a custom logger.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			logger.InfoContext(ctx, "llm send",
				buildRequestAttrs(ctx, request, level)...,
			)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "llm send failed",
					slog.String("model", request.Model),
					slog.Int("attempt", AttemptFromContext(ctx)),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			if response.Truncated() {
				logger.WarnContext(ctx, "llm response hit the token limit",
					buildResponseAttrs(response, elapsed, level)...,
				)
				return response, nil
			}

			logger.InfoContext(ctx, "llm send completed",
				buildResponseAttrs(response, elapsed, level)...,
			)

			return response, nil
		}
	}
}

// buildRequestAttrs returns slog attributes for an outgoing chat request,
// expanding detail according to the requested verbosity level.
func buildRequestAttrs(ctx context.Context, request ai.ChatRequest, level LogLevel) []any {
	attrs := []any{
		slog.String("model", request.Model),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.Int("attempt", AttemptFromContext(ctx)),
			slog.Int("message_count", len(request.Messages)),
		)
	}

	if level >= LogLevelVerbose {
		if request.SystemPrompt != "" {
			attrs = append(attrs, slog.String("system_prompt", utils.TruncateString(request.SystemPrompt, truncateLen)))
		}
		if len(request.Messages) > 0 {
			attrs = append(attrs, slog.String("prompt", utils.TruncateString(request.Messages[len(request.Messages)-1].Content, truncateLen)))
		}
	}

	return attrs
}

// buildResponseAttrs returns slog attributes for a completed response.
func buildResponseAttrs(response *ai.ChatResponse, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("model", response.Model),
		slog.Duration("duration", elapsed),
	}

	if response.Usage != nil {
		attrs = append(attrs,
			slog.Int("prompt_tokens", response.Usage.PromptTokens),
			slog.Int("completion_tokens", response.Usage.CompletionTokens),
			slog.Int("total_tokens", response.Usage.TotalTokens),
		)
	}

	if level >= LogLevelStandard && response.FinishReason != "" {
		attrs = append(attrs, slog.String("finish_reason", response.FinishReason))
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("content", utils.TruncateString(response.Content, truncateLen)))
	}

	return attrs
}
