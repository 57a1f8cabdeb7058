package codec

import (
	"iter"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/coregx/needlehunt/transform"
)

// NewJSONString builds the decode-only json-string transformer. There is
// no encoder: a JSON string literal is not itself something needlehunt
// would proactively wrap a value in.
//
// Matching is hand-rolled rather than regex-based: JSON string escaping is
// a small, stateful grammar (an escape changes how the next byte is
// interpreted), which reads more directly as a scanner than as a single
// regular expression, in the same spirit as an NFA building its own
// byte-at-a-time state machines instead of reaching for a third regex
// layer.
func NewJSONString() transform.Transformer {
	return transform.Transformer{
		ID: transform.JSONString,
		ExtractDecode: func(h []byte, minLen int) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				pos := 0
				for pos < len(h) {
					start := indexByteFrom(h, pos, '"')
					if start < 0 {
						return
					}
					end, dec, ok := scanJSONString(h, start)
					if !ok {
						pos = start + 1
						continue
					}
					if len(dec) >= minLen && !yield(dec) {
						return
					}
					pos = end
				}
			}
		},
	}
}

func indexByteFrom(h []byte, from int, c byte) int {
	for i := from; i < len(h); i++ {
		if h[i] == c {
			return i
		}
	}
	return -1
}

// scanJSONString attempts to parse a JSON string literal starting at
// h[start] == '"'. On success it returns the index just past the closing
// quote and the decoded content; on failure (unterminated string, invalid
// escape, or a bare control character) it returns ok == false so the caller
// can resume scanning just past the opening quote.
func scanJSONString(h []byte, start int) (end int, decoded []byte, ok bool) {
	i := start + 1
	buf := make([]byte, 0, 16)
	for i < len(h) {
		c := h[i]
		switch {
		case c == '"':
			return i + 1, buf, true
		case c == '\\':
			r, width, escOK := decodeJSONEscape(h, i)
			if !escOK {
				return 0, nil, false
			}
			var tmp [utf8.UTFMax]byte
			n := utf8.EncodeRune(tmp[:], r)
			buf = append(buf, tmp[:n]...)
			i += width
		case c < 0x20:
			return 0, nil, false // unescaped control character
		default:
			buf = append(buf, c)
			i++
		}
	}
	return 0, nil, false // unterminated
}

// decodeJSONEscape decodes the escape sequence starting at h[i] == '\\',
// returning the rune it represents, the number of input bytes consumed
// (including the backslash), and whether the escape was well-formed.
func decodeJSONEscape(h []byte, i int) (rune, int, bool) {
	if i+1 >= len(h) {
		return 0, 0, false
	}
	switch h[i+1] {
	case '"':
		return '"', 2, true
	case '\\':
		return '\\', 2, true
	case '/':
		return '/', 2, true
	case 'b':
		return '\b', 2, true
	case 'f':
		return '\f', 2, true
	case 'n':
		return '\n', 2, true
	case 'r':
		return '\r', 2, true
	case 't':
		return '\t', 2, true
	case 'u':
		return decodeJSONUnicodeEscape(h, i)
	default:
		return 0, 0, false
	}
}

// decodeJSONUnicodeEscape decodes a \uXXXX escape at h[i:i+6], combining it
// with an immediately following low surrogate (\uXXXX) when h[i+2:i+6]
// encodes a UTF-16 high surrogate.
func decodeJSONUnicodeEscape(h []byte, i int) (rune, int, bool) {
	if i+6 > len(h) {
		return 0, 0, false
	}
	hi, ok := parseHex4(h[i+2 : i+6])
	if !ok {
		return 0, 0, false
	}
	if !utf16.IsSurrogate(rune(hi)) {
		return rune(hi), 6, true
	}
	if i+12 > len(h) || h[i+6] != '\\' || h[i+7] != 'u' {
		return utf8.RuneError, 6, true
	}
	lo, ok := parseHex4(h[i+8 : i+12])
	if !ok {
		return utf8.RuneError, 6, true
	}
	r := utf16.DecodeRune(rune(hi), rune(lo))
	if r == utf8.RuneError {
		return utf8.RuneError, 6, true
	}
	return r, 12, true
}

func parseHex4(b []byte) (uint16, bool) {
	var v uint16
	for _, c := range b {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint16(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint16(c-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}
