package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there is no text to work with: the input
	// is nil, of an unsupported type, or blank after trimming.
	ErrEmptyInput = errors.New("extract: empty model output")

	// ErrUnparseableOutput is returned when the text cannot be turned into a
	// valid document. It is refined by ErrNoStructuralSpan and
	// ErrUnparseableAfterRepair; errors.Is matches all three.
	ErrUnparseableOutput = errors.New("extract: unparseable model output")

	// ErrNoStructuralSpan means the normalized text contains no opening
	// bracket.
	ErrNoStructuralSpan = fmt.Errorf("%w: no JSON object or array found", ErrUnparseableOutput)

	// ErrUnparseableAfterRepair means a candidate span was found and repaired
	// but neither the strict parse nor truncation recovery succeeded.
	ErrUnparseableAfterRepair = fmt.Errorf("%w: candidate still invalid after repair", ErrUnparseableOutput)
)

// Error describes a failed extraction. Kind is one of the package sentinels
// and Cause, when set, is the parser error for the best candidate.
type Error struct {
	Kind      error
	Candidate string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}

	return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Cause}
}
