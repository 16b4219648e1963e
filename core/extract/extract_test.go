package extract

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ========== Round trip ==========

func TestExtractRoundTrip(t *testing.T) {
	docs := []string{
		`{"a": 1}`,
		`[{"name": "李白", "age": 25}, {"name": "杜甫", "age": 30}]`,
		`{"events": [{"title": "A", "poemContent": "白日依山尽，黄河入海流"}]}`,
		`{"a": "[not] {json}", "b": ["{", "}"], "c": null, "d": true}`,
		`["{", "}"]`,
		`{"nested": {"deep": [[1, 2], [3, {"x": "y"}]]}}`,
		`{"escapes": "line\nbreak \"quoted\" \\ é"}`,
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			var want any
			if err := json.Unmarshal([]byte(doc), &want); err != nil {
				t.Fatalf("bad fixture: %v", err)
			}

			result, err := Extract(doc)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if result.Stage != StageDirect {
				t.Errorf("Extract() stage = %q, want %q", result.Stage, StageDirect)
			}
			if !reflect.DeepEqual(result.Value, want) {
				t.Errorf("Extract() value = %v, want %v", result.Value, want)
			}
		})
	}
}

// ========== Stages ==========

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantText  string
		wantStage Stage
	}{
		{
			name:      "fenced block",
			input:     "```json\n{\"a\": 1}\n```",
			wantText:  `{"a":1}`,
			wantStage: StageDirect,
		},
		{
			name:      "prose around an array",
			input:     "以下是结果：\n[{\"name\": \"李白\"}]\n希望你喜欢！",
			wantText:  `[{"name":"李白"}]`,
			wantStage: StageDirect,
		},
		{
			name:      "curly quotes",
			input:     `{“name”：“王维”，“poem”：“空山不见人，但闻人语响”}`,
			wantText:  `{"name":"王维","poem":"空山不见人，但闻人语响"}`,
			wantStage: StageDirect,
		},
		{
			name:      "raw newlines in a poem",
			input:     "{\"poemContent\": \"床前明月光，\n疑是地上霜。\"}",
			wantText:  `{"poemContent":"床前明月光，\n疑是地上霜。"}`,
			wantStage: StageDirect,
		},
		{
			name:      "bare keys single quotes trailing comma",
			input:     `{a: 1, b: 'two',}`,
			wantText:  `{"a":1,"b":"two"}`,
			wantStage: StageRepaired,
		},
		{
			name:      "truncated second element",
			input:     `{"events": [{"title": "A"}, {"title": "B"`,
			wantText:  `{"events":[{"title":"A"}]}`,
			wantStage: StageRecovered,
		},
		{
			name:      "truncated mid-string",
			input:     "```json\n{\"events\": [{\"title\": \"曲江踏青\", \"description\": \"...",
			wantText:  `{"events":[{"title":"曲江踏青"}]}`,
			wantStage: StageRecovered,
		},
		{
			name:      "truncated roster",
			input:     `[{"name": "李白"}, {"name": "杜`,
			wantText:  `[{"name":"李白"}]`,
			wantStage: StageRecovered,
		},
		{
			name:      "alternate candidate after the preferred one fails",
			input:     `{"a": 1} 注：[见上]`,
			wantText:  `{"a":1}`,
			wantStage: StageDirect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Extract(tt.input)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if result.Text != tt.wantText {
				t.Errorf("Extract() text = %s, want %s", result.Text, tt.wantText)
			}
			if result.Stage != tt.wantStage {
				t.Errorf("Extract() stage = %q, want %q", result.Stage, tt.wantStage)
			}
		})
	}
}

// ========== Errors ==========

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyInput},
		{"blank", "  \n\t ", ErrEmptyInput},
		{"no bracket", "抱歉，我无法完成此请求", ErrNoStructuralSpan},
		{"missing value", `{"a": }`, ErrUnparseableAfterRepair},
		{"python constants", `{"enabled": None, "value": 42}`, ErrUnparseableAfterRepair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Extract() error = %v, want %v", err, tt.want)
			}

			var extractErr *Error
			if !errors.As(err, &extractErr) {
				t.Fatalf("Extract() error type = %T, want *Error", err)
			}

			if tt.want != ErrEmptyInput && !errors.Is(err, ErrUnparseableOutput) {
				t.Errorf("Extract() error = %v, want it to match ErrUnparseableOutput", err)
			}
		})
	}
}

func TestExtractUnparseableCarriesCause(t *testing.T) {
	_, err := Extract(`{"a": }`)

	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Extract() error = %v, want a wrapped *json.SyntaxError", err)
	}

	var extractErr *Error
	if !errors.As(err, &extractErr) || extractErr.Candidate != `{"a": }` {
		t.Errorf("Extract() candidate = %+v, want %q", extractErr, `{"a": }`)
	}
}

func TestExtractFrom(t *testing.T) {
	doc := `{"a": 1}`
	var nilString *string

	tests := []struct {
		name    string
		input   any
		wantErr error
	}{
		{"nil", nil, ErrEmptyInput},
		{"nil pointer", nilString, ErrEmptyInput},
		{"unsupported type", 42, ErrEmptyInput},
		{"string", doc, nil},
		{"bytes", []byte(doc), nil},
		{"string pointer", &doc, nil},
		{"stringer", stringer(doc), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExtractFrom(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ExtractFrom() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractFrom() error = %v", err)
			}
			if result.Text != `{"a":1}` {
				t.Errorf("ExtractFrom() text = %s, want %s", result.Text, `{"a":1}`)
			}
		})
	}
}

type stringer string

func (s stringer) String() string { return string(s) }

// ========== Options ==========

func TestExtractLenientFallback(t *testing.T) {
	input := `{"enabled": None, "value": 42}`

	if _, err := Extract(input); !errors.Is(err, ErrUnparseableAfterRepair) {
		t.Fatalf("Extract() without fallback error = %v, want %v", err, ErrUnparseableAfterRepair)
	}

	result, err := Extract(input, WithLenientFallback())
	if err != nil {
		t.Fatalf("Extract(WithLenientFallback()) error = %v", err)
	}
	if result.Stage != StageLenient {
		t.Errorf("Extract() stage = %q, want %q", result.Stage, StageLenient)
	}

	object, ok := result.Value.(map[string]any)
	if !ok || object["value"] != float64(42) {
		t.Errorf("Extract() value = %v, want value 42", result.Value)
	}
}

// ========== Properties ==========

func TestExtractPreservesStringContent(t *testing.T) {
	poem := "昔人已乘黄鹤去，此地空余黄鹤楼"
	inputs := []string{
		`{"poem": "` + poem + `"}`,
		`{poem: '` + poem + `',}`,
		`{“poem”：“` + poem + `”}`,
		`{"poem": "` + poem + `", "next": {"cut`,
	}

	for _, input := range inputs {
		value, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", input, err)
		}

		object, ok := value.(map[string]any)
		if !ok || object["poem"] != poem {
			t.Errorf("Parse(%q) = %v, want poem %q", input, value, poem)
		}
	}
}

func TestExtractOutputIsValidJSON(t *testing.T) {
	inputs := []string{
		"Sure!\n```json\n[{'name': '李白', age: 25,},]\n```",
		`{"a": [1, 2, {"b": "c`,
		"{\"a\": \"x\ty\"}",
		strings.Repeat(`{"k": [`, 20) + "1, 2",
	}

	for _, input := range inputs {
		result, err := Extract(input)
		if err != nil {
			t.Fatalf("Extract(%q) error = %v", input, err)
		}
		if !json.Valid([]byte(result.Text)) {
			t.Errorf("Extract(%q) text %q is not valid JSON", input, result.Text)
		}
	}
}
