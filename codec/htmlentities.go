package codec

import (
	"html"
	"iter"
	"strconv"
	"strings"

	"github.com/coregx/needlehunt/transform"
)

// NewHTMLEntities builds the reversible html-entities transformer. It has
// no substring extraction: an entity-encoded run has no distinguishing
// delimiter the way a base64 or hex run does, so the only decode strategy
// is to run the whole haystack through the decoder, the same all-or-nothing
// shape lz-string and the generic compression transformer use.
//
// Decoding itself is built directly on the standard library rather than a
// pack dependency: Go's html package already
// implements the full named+numeric entity table the WHATWG spec defines,
// and nothing in the example corpus (or the wider ecosystem) improves on
// it for this narrowly-scoped job.
func NewHTMLEntities() transform.Transformer {
	return transform.Transformer{
		ID: transform.HTMLEntities,
		Encodings: func(v []byte) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				full := entityEncodeAll(string(v))
				if !yield([]byte(full)) {
					return
				}
				withQuotes := strings.NewReplacer("&#34;", `"`, "&#39;", "'").Replace(full)
				if withQuotes != full {
					yield([]byte(withQuotes))
				}
			}
		},
		ExtractDecode: func(h []byte, minLen int) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				if len(h) < minLen {
					return
				}
				dec := html.UnescapeString(string(h))
				if dec == string(h) {
					return // nothing decoded; not worth yielding as a candidate
				}
				yield([]byte(dec))
			}
		},
	}
}

// entityEncodeAll renders every rune of s as a decimal numeric character
// reference -- a fully-entity-encoded rendering, stricter than
// html.EscapeString, which only escapes the five characters meaningful to
// an HTML parser.
func entityEncodeAll(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 4)
	for _, r := range s {
		b.WriteString("&#")
		b.WriteString(strconv.Itoa(int(r)))
		b.WriteByte(';')
	}
	return b.String()
}
