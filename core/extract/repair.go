package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Repair fixes the syntax slips models make most often: a comma before a
// closing bracket, an unquoted object key, and single-quoted strings. Every
// fix is applied only to characters outside string literals, so a value such
// as "a, }" or "key: 'x'" is left untouched. The result is passed through
// [Normalize] again.
func Repair(candidate string) string {
	var (
		out  strings.Builder
		sc   scanner
		last rune // last significant character written outside a string
	)
	out.Grow(len(candidate) + 16)

	for i := 0; i < len(candidate); {
		r, size := utf8.DecodeRuneInString(candidate[i:])

		if sc.atStructural() {
			switch {
			case r == ',':
				if next := nextSignificant(candidate[i+size:]); next == '}' || next == ']' {
					i += size
					continue
				}

			case r == '\'' && (last == ':' || last == '{' || last == ',' || last == '['):
				if literal, n, ok := requoteSingle(candidate[i:]); ok {
					out.WriteString(literal)
					last = '"'
					i += n
					continue
				}

			case isKeyStart(r) && (last == '{' || last == ','):
				if n, ok := bareKey(candidate[i:]); ok {
					out.WriteByte('"')
					out.WriteString(candidate[i : i+n])
					out.WriteByte('"')
					last = '"'
					i += n
					continue
				}
			}
		}

		switch sc.next(r) {
		case structural:
			if !isSpace(r) {
				last = r
			}
		case delimiter:
			last = '"'
		}

		out.WriteRune(r)
		i += size
	}

	return Normalize(out.String())
}

// requoteSingle converts the single-quoted string at the start of text into
// a double-quoted one. It returns the converted literal and the number of
// bytes consumed. A quote only ends the string when a structural character or
// the end of text follows it, so apostrophes inside the value survive.
func requoteSingle(text string) (string, int, bool) {
	var out strings.Builder
	out.WriteByte('"')

	for i := 1; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])

		switch r {
		case '\\':
			next, nextSize := utf8.DecodeRuneInString(text[i+size:])
			if next == '\'' {
				out.WriteByte('\'')
			} else if nextSize > 0 {
				out.WriteByte('\\')
				out.WriteRune(next)
			} else {
				out.WriteString(`\\`)
			}
			i += size + nextSize
			continue

		case '"':
			out.WriteString(`\"`)

		case '\'':
			if closesString(text[i+size:]) {
				out.WriteByte('"')
				return out.String(), i + size, true
			}
			out.WriteByte('\'')

		default:
			out.WriteRune(r)
		}

		i += size
	}

	return "", 0, false
}

// bareKey reports the byte length of the identifier at the start of text
// when it is followed, after optional whitespace, by a colon.
func bareKey(text string) (int, bool) {
	n := 0
	for n < len(text) {
		r, size := utf8.DecodeRuneInString(text[n:])
		if !isKeyRune(r) {
			break
		}
		n += size
	}

	if n == 0 || nextSignificant(text[n:]) != ':' {
		return 0, false
	}

	return n, true
}

func isKeyStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isKeyRune(r rune) bool {
	return isKeyStart(r) || unicode.IsDigit(r)
}
