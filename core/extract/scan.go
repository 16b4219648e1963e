package extract

// class is the scanner's verdict on the character it just consumed.
type class int

const (
	// structural characters lie outside every string literal.
	structural class = iota
	// delimiter is a double quote that opens or closes a string literal.
	delimiter
	// content is a literal character inside a string.
	content
	// escaped is a backslash or the character directly after one.
	escaped
)

// scanner tracks whether a position in JSON-like text lies inside a
// double-quoted string literal. It is fed one character at a time and keeps
// no other state, so callers can pause it to peek ahead.
type scanner struct {
	inString   bool
	escapeNext bool
}

// next consumes r and reports how it was classified. A backslash sets
// escapeNext whether or not it sits inside a string, so an escaped quote
// never toggles the string state.
func (s *scanner) next(r rune) class {
	if s.escapeNext {
		s.escapeNext = false
		return escaped
	}

	switch r {
	case '\\':
		s.escapeNext = true
		return escaped
	case '"':
		s.inString = !s.inString
		return delimiter
	}

	if s.inString {
		return content
	}

	return structural
}

// atStructural reports whether the next character will be classified as
// structural, provided it is not itself a quote or backslash.
func (s *scanner) atStructural() bool {
	return !s.inString && !s.escapeNext
}

// nextSignificant returns the first non-whitespace rune of text, or 0 when
// only whitespace remains.
func nextSignificant(text string) rune {
	for _, r := range text {
		if !isSpace(r) {
			return r
		}
	}

	return 0
}

// closesString reports whether a quote followed by text plausibly ends a
// string literal: the next significant character is structural, or the text
// ends. Full-width colon and comma count because they are folded later.
func closesString(text string) bool {
	switch nextSignificant(text) {
	case 0, ',', ':', '}', ']', '\uff0c', '\uff1a':
		return true
	}

	return false
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\u00a0', '\u3000':
		return true
	}

	return false
}
