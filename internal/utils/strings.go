package utils

import (
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultMaxStringLength is the default maximum length for truncated strings
	DefaultMaxStringLength = 500
)

// TruncateString shortens s to at most maxLen characters, appending a suffix
// that records the original total length so callers know data was omitted.
// Lengths count runes, so a poem is never cut inside a multi-byte character.
// If maxLen is zero or negative, [DefaultMaxStringLength] is used instead.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}

	total := utf8.RuneCountInString(s)
	if total <= maxLen {
		return s
	}

	cut := 0
	for i := 0; i < maxLen; i++ {
		_, size := utf8.DecodeRuneInString(s[cut:])
		cut += size
	}

	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:cut], total)
}
