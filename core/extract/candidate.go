package extract

import (
	"regexp"
	"strings"
)

var (
	openingFence = regexp.MustCompile("^\\s*```[\\w.+-]*")
	closingFence = regexp.MustCompile("```\\s*$")
)

// span is a half-open byte range [start, end) of the text it was found in.
type span struct {
	start, end int
}

func (s span) of(text string) string {
	return text[s.start:s.end]
}

// encloses reports whether o lies strictly inside s.
func (s span) encloses(o span) bool {
	return s.start < o.start && o.end < s.end
}

// greedySpan returns the range from the first open byte to the last close
// byte of text, when the close comes after the open.
func greedySpan(text string, open, close byte) (span, bool) {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return span{}, false
	}

	end := strings.LastIndexByte(text, close)
	if end <= start {
		return span{}, false
	}

	return span{start: start, end: end + 1}, true
}

// stripFences removes a leading ```lang fence and a trailing ``` fence.
func stripFences(text string) string {
	text = openingFence.ReplaceAllString(text, "")
	text = closingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// candidates returns the spans of text that may hold the intended value, in
// the order the pipeline should try them. The greedy array span is preferred
// because the game's list payloads are top-level arrays, unless the object
// span encloses it, in which case the array is one of the object's fields.
// A bracket that opens before the other kind's span and never closes marks a
// truncated outer value; its tail is tried first.
func candidates(text string) []string {
	text = stripFences(text)

	array, hasArray := greedySpan(text, '[', ']')
	object, hasObject := greedySpan(text, '{', '}')

	switch {
	case hasArray && hasObject:
		if object.encloses(array) {
			return []string{object.of(text), array.of(text)}
		}
		return []string{array.of(text), object.of(text)}

	case hasArray:
		if brace := strings.IndexByte(text, '{'); brace >= 0 && brace < array.start {
			return []string{text[brace:], array.of(text)}
		}
		return []string{array.of(text)}

	case hasObject:
		if bracket := strings.IndexByte(text, '['); bracket >= 0 && bracket < object.start {
			return []string{text[bracket:], object.of(text)}
		}
		return []string{object.of(text)}
	}

	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return nil
	}

	if end := strings.LastIndexAny(text, "]}"); end > start {
		return []string{text[start : end+1]}
	}

	// Nothing closes after the opening bracket: hand the tail to truncation
	// recovery.
	return []string{text[start:]}
}

// ExtractCandidate locates the substring of text most likely to hold the
// intended JSON value. It strips markdown code fences and surrounding prose.
// The boolean is false when text contains no opening bracket at all.
//
// ExtractCandidate does not normalize its input; [Extract] runs [Normalize]
// before calling it.
func ExtractCandidate(text string) (string, bool) {
	found := candidates(text)
	if len(found) == 0 {
		return "", false
	}

	return found[0], true
}
