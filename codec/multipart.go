package codec

import (
	"bytes"
	"io"
	"iter"
	"mime/multipart"

	"github.com/coregx/needlehunt/transform"
)

// NewMultipart builds the decode-only form-data transformer. There is no
// encoder: needlehunt never needs to wrap a value as a multipart body, only
// recognize one in a haystack.
//
// Go's mime/multipart.Reader handles the actual RFC 2046 parsing; this
// transformer only adds boundary-sniffing and a Content-Disposition policy
// on top of it. One accepted deviation: Go's reader already decodes a part
// whose Content-Transfer-Encoding is "quoted-printable" on read, which this
// transformer does not otherwise support -- there is no stdlib knob to
// suppress it, and papering over it with a custom reader would duplicate
// the whole of mime/multipart for one rarely-seen header.
func NewMultipart() transform.Transformer {
	return transform.Transformer{
		ID: transform.FormData,
		ExtractDecode: func(h []byte, minLen int) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				boundary, ok := sniffMultipartBoundary(h)
				if !ok {
					return
				}
				mr := multipart.NewReader(bytes.NewReader(h), boundary)
				for {
					part, err := mr.NextPart()
					if err != nil {
						return // EOF or malformed trailer: truncate silently
					}
					if part.Header.Get("Content-Disposition") == "" {
						part.Close()
						return // a part with no Content-Disposition is rejected
					}
					data, err := io.ReadAll(part)
					part.Close()
					if err != nil {
						return
					}
					if len(data) >= minLen && !yield(data) {
						return
					}
				}
			}
		},
	}
}

// sniffMultipartBoundary inspects h's first line. It must be a CRLF-
// terminated "--" followed by an RFC-2046 boundary token; a bare LF line
// ending is rejected outright.
func sniffMultipartBoundary(h []byte) (string, bool) {
	crlf := bytes.Index(h, []byte("\r\n"))
	if crlf < 0 {
		return "", false
	}
	line := h[:crlf]
	if bytes.ContainsRune(line, '\n') {
		return "", false // a bare LF appeared before the CRLF we found
	}
	if len(line) < 3 || line[0] != '-' || line[1] != '-' {
		return "", false
	}
	token := bytes.TrimRight(line[2:], " \t")
	if !isRFC2046Boundary(string(token)) {
		return "", false
	}
	return string(token), true
}

func isRFC2046Boundary(s string) bool {
	if len(s) == 0 || len(s) > 70 {
		return false
	}
	if s[len(s)-1] == ' ' {
		return false
	}
	for _, c := range []byte(s) {
		if !isBoundaryChar(c) {
			return false
		}
	}
	return true
}

func isBoundaryChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		return true
	case c == ' ':
		return true
	default:
		return bytes.IndexByte([]byte(`'()+_,-./:=?`), c) >= 0
	}
}
