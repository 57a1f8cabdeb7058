package codec

import (
	"iter"
	"net/url"
	"strings"
	"unicode/utf8"

	coregex "github.com/coregx/coregex"

	"github.com/coregx/needlehunt/transform"
)

// uriCharRE matches runs of characters that could plausibly appear inside a
// percent-encoded or form-encoded token: unreserved characters, '%', '+',
// and the sub-delimiters ! $ ' ( ) * , ; : @. Separators meaningful to a query string ('/', '&', '=', '?') are
// excluded, so a match never spans across field boundaries.
var uriCharRE = coregex.MustCompile(`[A-Za-z0-9\-_.~%+!$'()*,;:@]+`)

// NewURI builds the reversible, substring-capable URI-component transformer.
func NewURI() transform.Transformer {
	return transform.Transformer{
		ID: transform.URI,
		Encodings: func(v []byte) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				if !utf8.Valid(v) {
					return // not binary-safe; silently skipped
				}
				escaped := percentEscape(string(v))
				if !yield([]byte(escaped)) {
					return
				}
				formEncoded := strings.ReplaceAll(escaped, "%20", "+")
				if formEncoded != escaped {
					yield([]byte(formEncoded))
				}
			}
		},
		ExtractDecode: func(h []byte, minLen int) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				for _, sp := range findAllIndex(uriCharRE, h) {
					tok := h[sp.Start:sp.End]
					if len(tok) < minLen {
						continue
					}
					if !strings.ContainsAny(string(tok), "%+") {
						continue // must contain at least one %HH or a literal '+'
					}
					form := strings.ReplaceAll(string(tok), "+", "%20")
					dec, err := url.QueryUnescape(form)
					if err != nil {
						continue
					}
					if !yield([]byte(dec)) {
						return
					}
				}
			}
		},
	}
}

// percentEscape percent-encodes every byte of s outside the unreserved set,
// including space as %20 rather than '+' (the form-encoded spelling
// url.QueryEscape produces).
func percentEscape(s string) string {
	const hexDigits = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0xf])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	default:
		return false
	}
}
