package ai

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusError(t *testing.T) {
	tests := []struct {
		status        int
		wantTemporary bool
		wantAuth      bool
	}{
		{400, false, false},
		{401, false, true},
		{403, false, true},
		{404, false, false},
		{429, true, false},
		{500, true, false},
		{502, true, false},
		{503, true, false},
		{529, true, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := fmt.Errorf("send: %w", &StatusError{StatusCode: tt.status, Body: "body"})

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("errors.As() failed for %v", err)
			}
			if got := statusErr.Temporary(); got != tt.wantTemporary {
				t.Errorf("Temporary() = %v, want %v", got, tt.wantTemporary)
			}
			if got := errors.Is(err, ErrUnauthorized); got != tt.wantAuth {
				t.Errorf("errors.Is(err, ErrUnauthorized) = %v, want %v", got, tt.wantAuth)
			}
		})
	}
}

func TestChatResponseTruncated(t *testing.T) {
	var nilResponse *ChatResponse
	if nilResponse.Truncated() {
		t.Error("Truncated() on nil response = true, want false")
	}
	if !(&ChatResponse{FinishReason: "length"}).Truncated() {
		t.Error("Truncated() = false, want true for finish_reason length")
	}
	if (&ChatResponse{FinishReason: "stop"}).Truncated() {
		t.Error("Truncated() = true, want false for finish_reason stop")
	}
}
