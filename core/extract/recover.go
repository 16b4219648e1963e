package extract

import (
	"bytes"
	"encoding/json"
	"strings"
)

// closing maps an opening bracket to the bracket that closes it.
var closing = map[byte]byte{'{': '}', '[': ']'}

// cut is a position at which a truncated document may be closed, together
// with the brackets still open there.
type cut struct {
	end     int
	closers string
}

// RecoverTruncated returns the compact form of the longest well-formed
// document that text begins with. Model output is often cut off by a token
// limit, leaving a trailing element or string half written; recovery drops
// the unfinished part and closes the brackets that are still open.
//
// Valid input is returned compacted. Otherwise the first point where every
// bracket is balanced is tried, then closures at each element boundary from
// the longest to the shortest. Every returned text has passed a strict JSON
// parse. The boolean is false when no prefix parses.
func RecoverTruncated(text string) (string, bool) {
	if compacted, ok := compact(text); ok {
		return compacted, true
	}

	var (
		sc    scanner
		stack []byte
		cuts  []cut
	)

	// Bytes are enough here: no byte of a multi-byte UTF-8 sequence is a
	// quote, backslash or bracket.
	for i := 0; i < len(text); i++ {
		c := text[i]
		if sc.next(rune(c)) != structural {
			continue
		}

		switch c {
		case '{', '[':
			stack = append(stack, c)

		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				if compacted, ok := compact(text[:i+1]); ok {
					return compacted, true
				}
				continue
			}
			cuts = append(cuts, cut{end: i + 1, closers: closersFor(stack)})

		case ',':
			if len(stack) > 0 {
				cuts = append(cuts, cut{end: i, closers: closersFor(stack)})
			}
		}
	}

	for k := len(cuts) - 1; k >= 0; k-- {
		prefix := strings.TrimRight(text[:cuts[k].end], " \t\n,")
		if compacted, ok := compact(prefix + cuts[k].closers); ok {
			return compacted, true
		}
	}

	return "", false
}

func closersFor(stack []byte) string {
	closers := make([]byte, len(stack))
	for i, open := range stack {
		closers[len(stack)-1-i] = closing[open]
	}

	return string(closers)
}

// compact parse-validates text and returns it with insignificant whitespace
// removed. Key order and string content are preserved.
func compact(text string) (string, bool) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return "", false
	}

	return buf.String(), true
}
