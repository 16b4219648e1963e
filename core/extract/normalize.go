package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// lineBreaks folds every line-separator variant to a single LF. CRLF must
// come before the lone CR so a Windows line ending yields one LF, not two.
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// Normalize rewrites text into a form the strict JSON parser accepts without
// changing what any string value decodes to. It strips a leading byte order
// mark, folds line separators to LF, replaces curly and full-width quotes and
// full-width colons and commas that sit outside string literals, and escapes
// raw control characters inside string literals.
//
// Single-quoted values are left for [Repair]; their content is not folded.
//
// Normalize never fails and is idempotent: Normalize(Normalize(s)) equals
// Normalize(s) for every input.
func Normalize(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = lineBreaks.Replace(text)

	var (
		out    strings.Builder
		sc     scanner
		curly  bool // the open string was started by a curly or full-width quote
		single bool // inside a single-quoted value that Repair will requote
		last   rune // last significant character outside any string
		mode   escapeMode
	)
	out.Grow(len(text))

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		rest := text[i:]

		if isDoubleQuoteVariant(r) && !sc.escapeNext && !single {
			switch {
			case !sc.inString:
				r = '"'
				curly = true
			case curly && closesString(rest):
				r = '"'
			}
		}

		wasInString := sc.inString

		switch sc.next(r) {
		case delimiter:
			if !sc.inString {
				curly = false
			}
			last = '"'
			out.WriteByte('"')

		case escaped:
			if sc.escapeNext {
				// r is the backslash itself.
				if !wasInString {
					mode = escapeVerbatim
					out.WriteByte('\\')
					break
				}
				mode = classifyEscape(rest)
				switch mode {
				case escapeVerbatim:
					out.WriteByte('\\')
				case escapeLiteral:
					out.WriteString(`\\`)
				}
				break
			}

			switch {
			case mode == escapeLiteral || mode == escapeDropped:
				writeStringRune(&out, r)
			case r == '\n':
				out.WriteByte('n')
			case r == '\t':
				out.WriteByte('t')
			default:
				out.WriteRune(r)
			}
			mode = escapeVerbatim

		case content:
			writeStringRune(&out, r)

		case structural:
			if single {
				if isSingleQuoteVariant(r) && closesString(rest) {
					single = false
					r, last = '\'', '\''
				}
				out.WriteRune(r)
				break
			}

			r = foldStructural(r)
			if r == '\'' && opensValue(last) {
				single = true
			}
			if !isSpace(r) {
				last = r
			}
			out.WriteRune(r)
		}
	}

	return out.String()
}

// escapeMode says how a backslash inside a string literal is rewritten.
type escapeMode int

const (
	// escapeVerbatim keeps a valid JSON escape as it is.
	escapeVerbatim escapeMode = iota
	// escapeDropped removes the backslash of \' which JSON does not allow.
	escapeDropped
	// escapeLiteral doubles a backslash that starts no valid escape so the
	// backslash survives as content.
	escapeLiteral
)

// classifyEscape decides what to do with a backslash inside a string literal
// given the text that follows it.
func classifyEscape(rest string) escapeMode {
	if rest == "" {
		return escapeLiteral
	}

	switch rest[0] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u', '\n', '\t':
		return escapeVerbatim
	case '\'':
		return escapeDropped
	}

	return escapeLiteral
}

// writeStringRune writes a character that belongs to a string value,
// escaping it when strict JSON forbids it raw.
func writeStringRune(out *strings.Builder, r rune) {
	switch {
	case r == '\n':
		out.WriteString(`\n`)
	case r == '\t':
		out.WriteString(`\t`)
	case r == '\r':
		out.WriteString(`\r`)
	case r < 0x20:
		fmt.Fprintf(out, `\u%04x`, r)
	default:
		out.WriteRune(r)
	}
}

// isDoubleQuoteVariant reports whether r is a typographic stand-in for '"'.
func isDoubleQuoteVariant(r rune) bool {
	switch r {
	case '“', '”', '„', '＂':
		return true
	}

	return false
}

func isSingleQuoteVariant(r rune) bool {
	switch r {
	case '\'', '‘', '’', '＇':
		return true
	}

	return false
}

// opensValue reports whether a quote after last starts a key, a value or an
// array element.
func opensValue(last rune) bool {
	switch last {
	case ':', '{', ',', '[':
		return true
	}

	return false
}

// foldStructural maps full-width punctuation and curly single quotes that
// appear outside string literals to their ASCII forms.
func foldStructural(r rune) rune {
	switch r {
	case '：':
		return ':'
	case '，':
		return ','
	case '‘', '’', '＇':
		return '\''
	}

	return r
}
