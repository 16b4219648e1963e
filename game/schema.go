package game

import (
	"embed"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

// Kind names a payload the game asks the model for.
type Kind string

const (
	KindPoets      Kind = "poets"
	KindEvents     Kind = "events"
	KindParty      Kind = "party"
	KindExam       Kind = "exam"
	KindCompletion Kind = "completion"
)

// Kinds lists every payload kind.
var Kinds = []Kind{KindPoets, KindEvents, KindParty, KindExam, KindCompletion}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Kinds, k) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

//go:embed schemas/*.json
var schemaFS embed.FS

var compiledSchemas = sync.OnceValues(func() (map[Kind]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	out := make(map[Kind]*jsonschema.Schema, len(Kinds))

	for _, kind := range Kinds {
		raw, err := schemaFS.ReadFile("schemas/" + string(kind) + ".json")
		if err != nil {
			return nil, fmt.Errorf("read %s schema: %w", kind, err)
		}
		schema, err := compiler.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", kind, err)
		}
		out[kind] = schema
	}

	return out, nil
})

// Schema returns the raw JSON Schema document for kind.
func Schema(kind Kind) ([]byte, error) {
	if !slices.Contains(Kinds, kind) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return schemaFS.ReadFile("schemas/" + string(kind) + ".json")
}

// Validate checks an extracted document against the schema of kind.
// Mismatches are reported as ErrInvalidPayload with the failing fields.
func Validate(kind Kind, value any) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}

	schema, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	result := schema.Validate(value)
	if result.IsValid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors))
	for field, validationErr := range result.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, validationErr.Message))
	}
	sort.Strings(msgs)

	return fmt.Errorf("%w: %s: %s", ErrInvalidPayload, kind, strings.Join(msgs, "; "))
}
