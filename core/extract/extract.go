package extract

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Stage names the pipeline step that produced a result.
type Stage string

const (
	// StageDirect means the candidate parsed as soon as it was normalized.
	StageDirect Stage = "direct"
	// StageRepaired means the candidate parsed after Repair.
	StageRepaired Stage = "repaired"
	// StageRecovered means truncation recovery closed a cut-off document.
	StageRecovered Stage = "recovered"
	// StageLenient means the opt-in lenient repair produced the document.
	StageLenient Stage = "lenient"
)

// Result is a successfully extracted document.
type Result struct {
	// Value is the decoded document: map[string]any or []any.
	Value any
	// Text is the compact JSON encoding of Value.
	Text string
	// Candidate is the span the document was recovered from.
	Candidate string
	// Stage is the step that produced Text.
	Stage Stage
}

// Option configures a single Extract call.
type Option func(*options)

type options struct {
	lenient bool
}

// WithLenientFallback enables a last stage that hands a candidate the
// pipeline could not recover to github.com/kaptinlin/jsonrepair. Its output
// is still parse-validated, but it may guess at missing values, so it is off
// by default.
func WithLenientFallback() Option {
	return func(o *options) {
		o.lenient = true
	}
}

// Extract recovers a JSON object or array from raw model output.
//
// The text is normalized, candidate spans are located, and each candidate is
// tried in turn: strict parse, then Repair, then truncation recovery, then the
// lenient fallback when enabled. The first success is returned.
//
// Errors are *Error values whose Kind is ErrEmptyInput, ErrNoStructuralSpan
// or ErrUnparseableAfterRepair.
func Extract(raw string, opts ...Option) (*Result, error) {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &Error{Kind: ErrEmptyInput}
	}

	found := candidates(Normalize(raw))
	if len(found) == 0 {
		return nil, &Error{Kind: ErrNoStructuralSpan}
	}

	var firstErr error
	for _, candidate := range found {
		result, err := resolve(candidate, cfg)
		if err == nil {
			return result, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return nil, firstErr
}

// resolve runs the parse stages over one candidate.
func resolve(candidate string, cfg options) (*Result, error) {
	if text, ok := compact(candidate); ok {
		return newResult(text, candidate, StageDirect)
	}

	repaired := Repair(candidate)
	if text, ok := compact(repaired); ok {
		return newResult(text, candidate, StageRepaired)
	}

	if text, ok := RecoverTruncated(repaired); ok {
		return newResult(text, candidate, StageRecovered)
	}

	if cfg.lenient {
		if fixed, err := jsonrepair.JSONRepair(repaired); err == nil {
			if text, ok := compact(fixed); ok {
				return newResult(text, candidate, StageLenient)
			}
		}
	}

	var probe any
	cause := json.Unmarshal([]byte(repaired), &probe)

	return nil, &Error{Kind: ErrUnparseableAfterRepair, Candidate: candidate, Cause: cause}
}

func newResult(text, candidate string, stage Stage) (*Result, error) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, &Error{Kind: ErrUnparseableAfterRepair, Candidate: candidate, Cause: err}
	}

	return &Result{Value: value, Text: text, Candidate: candidate, Stage: stage}, nil
}

// ExtractFrom is Extract for loosely typed input such as a decoded response
// field. It accepts string, []byte, *string and fmt.Stringer; nil and any
// other type yield ErrEmptyInput.
func ExtractFrom(input any, opts ...Option) (*Result, error) {
	if input == nil {
		return nil, &Error{Kind: ErrEmptyInput}
	}

	if v := reflect.ValueOf(input); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, &Error{Kind: ErrEmptyInput}
	}

	switch v := input.(type) {
	case string:
		return Extract(v, opts...)
	case []byte:
		return Extract(string(v), opts...)
	case *string:
		return Extract(*v, opts...)
	case fmt.Stringer:
		return Extract(v.String(), opts...)
	}

	return nil, &Error{Kind: ErrEmptyInput, Cause: fmt.Errorf("unsupported input type %T", input)}
}

// Parse returns only the decoded document of Extract.
func Parse(raw string, opts ...Option) (any, error) {
	result, err := Extract(raw, opts...)
	if err != nil {
		return nil, err
	}

	return result.Value, nil
}
