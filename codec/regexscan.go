package codec

import coregex "github.com/coregx/coregex"

// span is a half-open byte range [Start, End) within a haystack.
type span struct {
	Start, End int
}

// findAllIndex returns the non-overlapping leftmost-first match spans of re
// in b, advancing past empty matches by one byte to avoid looping forever.
// This mirrors coregex.Regex.FindAll's own "search from current position,
// adjust to absolute offsets" loop, since the library exposes FindAll only
// in terms of matched bytes, not positions.
func findAllIndex(re *coregex.Regex, b []byte) []span {
	var spans []span
	pos := 0
	for pos <= len(b) {
		loc := re.FindIndex(b[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		spans = append(spans, span{start, end})
		if end > pos {
			pos = end
		} else {
			pos++
		}
	}
	return spans
}

// boundaryOK reports whether b[start:end] is not itself adjacent to more
// characters from class on either side -- the manual equivalent of a
// negative lookaround for codecs built on an RE2-style engine (coregex,
// like stdlib regexp, is compiled from regexp/syntax and has no lookaround
// support).
func boundaryOK(b []byte, start, end int, inClass func(byte) bool) bool {
	if start > 0 && inClass(b[start-1]) {
		return false
	}
	if end < len(b) && inClass(b[end]) {
		return false
	}
	return true
}
