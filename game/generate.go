package game

import (
	"context"
	"fmt"
	"maps"

	"github.com/leofalp/tangshi/core/client"
	"github.com/leofalp/tangshi/core/extract"
)

// participantKeys are the misspellings models use for a party's
// participants array.
var participantKeys = []string{"participant", "Participant", "partipant", "Poets", "poets", "PoetList", "poetList"}

// Generate asks g for a payload of the given kind, validates the extracted
// document against the kind's schema and decodes it into T. Extraction,
// validation and decoding failures all wrap client.ErrRetryPrompt.
func Generate[T any](ctx context.Context, g client.Generator, kind Kind, prompt, systemPrompt string, opts ...extract.Option) (T, error) {
	var zero T

	result, err := client.GenerateJSON(ctx, g, prompt, systemPrompt, opts...)
	if err != nil {
		return zero, err
	}

	return DecodePayload[T](kind, result.Value)
}

// DecodePayload reshapes, validates and decodes an extracted document.
func DecodePayload[T any](kind Kind, value any) (T, error) {
	var zero T

	value = reshape(kind, value)
	if err := Validate(kind, value); err != nil {
		return zero, fmt.Errorf("%w: %w", client.ErrRetryPrompt, err)
	}

	out, err := extract.Decode[T](value)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", client.ErrRetryPrompt, err)
	}

	return out, nil
}

// reshape undoes the common wrappers models put around a payload: a roster
// array returned inside a single-key object, a single event returned
// without its "events" array, and a misspelt participants key.
func reshape(kind Kind, value any) any {
	switch kind {
	case KindPoets:
		obj, ok := value.(map[string]any)
		if !ok {
			return value
		}
		if len(obj) == 1 {
			for _, v := range obj {
				if arr, ok := v.([]any); ok {
					return arr
				}
			}
		}
		if _, ok := obj["name"]; ok {
			return []any{obj}
		}

	case KindEvents:
		switch v := value.(type) {
		case []any:
			return map[string]any{"events": v}
		case map[string]any:
			if _, ok := v["events"]; !ok {
				if _, ok := v["poemContent"]; ok {
					return map[string]any{"events": []any{v}}
				}
			}
		}

	case KindParty:
		obj, ok := value.(map[string]any)
		if !ok {
			return value
		}
		if _, ok := obj["participants"].([]any); ok {
			return obj
		}
		for _, key := range participantKeys {
			if arr, ok := obj[key].([]any); ok {
				out := maps.Clone(obj)
				out["participants"] = arr
				return out
			}
		}
	}

	return value
}

// GeneratePoets asks for a roster of poets.
func GeneratePoets(ctx context.Context, g client.Generator, prompt, systemPrompt string) ([]Poet, error) {
	return Generate[[]Poet](ctx, g, KindPoets, prompt, systemPrompt)
}

// GenerateEvents asks for this month's events.
func GenerateEvents(ctx context.Context, g client.Generator, prompt, systemPrompt string) (MonthlyEvents, error) {
	return Generate[MonthlyEvents](ctx, g, KindEvents, prompt, systemPrompt)
}

// GenerateParty asks for the outcome of a poetry party.
func GenerateParty(ctx context.Context, g client.Generator, prompt, systemPrompt string) (PoetryParty, error) {
	return Generate[PoetryParty](ctx, g, KindParty, prompt, systemPrompt)
}

// GenerateExam asks for an examination result.
func GenerateExam(ctx context.Context, g client.Generator, prompt, systemPrompt string) (ExamResult, error) {
	return Generate[ExamResult](ctx, g, KindExam, prompt, systemPrompt)
}

// GenerateCompletion asks the model to finish the player's lines.
func GenerateCompletion(ctx context.Context, g client.Generator, prompt, systemPrompt string) (PoemCompletion, error) {
	return Generate[PoemCompletion](ctx, g, KindCompletion, prompt, systemPrompt)
}
