package codec

import (
	"encoding/base64"
	"fmt"
	"iter"
	"strings"

	coregex "github.com/coregx/coregex"

	"github.com/coregx/needlehunt/transform"
)

// Base64Dialect is a choice of the two non-alphanumeric digits and an
// optional padding character. Pad == 0 means unpadded.
type Base64Dialect struct {
	Name     string
	D62, D63 byte
	Pad      byte
}

// Preset dialects recognized by the default base64 transformer.
var (
	DialectStandard    = Base64Dialect{"standard", '+', '/', '='}
	DialectUnpadded    = Base64Dialect{"unpadded", '+', '/', 0}
	DialectURLSafe     = Base64Dialect{"url-safe", '-', '_', 0}
	DialectLZStringURI = Base64Dialect{"lz-string-uri", '+', '-', 0}
)

// DefaultBase64Dialects is the dialect set a plain NewBase64 scans for.
var DefaultBase64Dialects = []Base64Dialect{
	DialectStandard, DialectUnpadded, DialectURLSafe, DialectLZStringURI,
}

const alphaNum = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// alphabet returns the 64-character digit alphabet for d, in the canonical
// index order Go's base64 codecs assume (A-Za-z0-9 then d62, d63).
func (d Base64Dialect) alphabet() string {
	return alphaNum + string(d.D62) + string(d.D63)
}

func (d Base64Dialect) encoding() *base64.Encoding {
	enc := base64.NewEncoding(d.alphabet())
	if d.Pad == 0 {
		return enc.WithPadding(base64.NoPadding)
	}
	return enc.WithPadding(rune(d.Pad))
}

// sameAlphabet reports whether d and other use the same two extra digits.
func (d Base64Dialect) sameAlphabet(other Base64Dialect) bool {
	return d.D62 == other.D62 && d.D63 == other.D63
}

// Base64Options configures the base64 transformer.
type Base64Options struct {
	Dialects []Base64Dialect

	// TryUnalignedOffsets enables the "skip first 0..3 characters" decode
	// mode: opt-in, since it significantly inflates
	// search cost and is only sound for unpadded dialects (shifting a
	// padded token would misalign its padding character run).
	TryUnalignedOffsets bool
}

// DefaultBase64Options returns the standard dialect set with the
// unaligned-offset search disabled.
func DefaultBase64Options() Base64Options {
	return Base64Options{Dialects: DefaultBase64Dialects}
}

type base64Matcher struct {
	dialect Base64Dialect
	padded  bool
	re      *coregex.Regex
	inClass func(byte) bool
}

// buildBase64Matchers compiles one regex per (dialect, padded/unpadded)
// combination that is worth scanning for, skipping a dialect's padded form
// when a dialect sharing its alphabet is already scanned unpadded -- the
// padded form's matches are a subset of what the unpadded regex already
// finds once its padding is stripped.
func buildBase64Matchers(dialects []Base64Dialect) []base64Matcher {
	var out []base64Matcher
	for _, d := range dialects {
		classExpr := digitClassExpr(d)
		inClass := func(c byte) bool { return isBase64Digit(c, d) }

		if d.Pad != 0 {
			redundant := false
			for _, other := range dialects {
				if other.Pad == 0 && other.sameAlphabet(d) {
					redundant = true
					break
				}
			}
			if !redundant {
				pad := coregex.QuoteMeta(string(d.Pad))
				pattern := fmt.Sprintf(`(?:%s{4})*(?:%s{4}|%s{3}%s|%s{2}%s{2}|%s%s{3})`,
					classExpr, classExpr, classExpr, pad, classExpr, pad, classExpr, pad)
				if re, err := coregex.Compile(pattern); err == nil {
					out = append(out, base64Matcher{dialect: d, padded: true, re: re, inClass: inClass})
				}
			}
		}

		pattern := fmt.Sprintf(`%s+`, classExpr)
		if re, err := coregex.Compile(pattern); err == nil {
			out = append(out, base64Matcher{dialect: d, padded: false, re: re, inClass: inClass})
		}
	}
	return out
}

func digitClassExpr(d Base64Dialect) string {
	var b strings.Builder
	b.WriteString("[A-Za-z0-9")
	b.WriteString(coregex.QuoteMeta(string(d.D62)))
	b.WriteString(coregex.QuoteMeta(string(d.D63)))
	b.WriteByte(']')
	return b.String()
}

func isBase64Digit(c byte, d Base64Dialect) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == d.D62, c == d.D63:
		return true
	default:
		return false
	}
}

func unalignedShifts(d Base64Dialect, enabled bool) []int {
	if !enabled || d.Pad != 0 {
		return []int{0}
	}
	return []int{0, 1, 2, 3}
}

// decodeBase64Token decodes tok (already dialect-matched, padding still
// attached if present) for dialect d, recovering the low bits of a
// non-4-aligned tail.
func decodeBase64Token(tok []byte, d Base64Dialect) ([]byte, bool) {
	stripped := stripTrailingPad(tok, d.Pad)
	padded := len(stripped) < len(tok)
	tok = stripped
	if len(tok) == 0 {
		return []byte{}, true
	}

	alphabet := d.alphabet()
	if n := len(tok) % 4; n != 0 {
		if n == 1 && !padded {
			// A bare trailing single digit carries only 6 bits -- never
			// enough to recover a byte -- and with no padding there is no
			// signal that a block was deliberately terminated here.
			return []byte{}, true
		}
		bitsDropped := (len(tok) * 6) % 8
		lastVal := strings.IndexByte(alphabet, tok[len(tok)-1])
		if lastVal < 0 {
			return nil, false
		}
		needsFixup := n == 1
		if bitsDropped > 0 {
			mask := (1 << uint(bitsDropped)) - 1
			if lastVal&mask != 0 {
				needsFixup = true
			}
		}
		if needsFixup {
			fixed := make([]byte, len(tok)+1)
			copy(fixed, tok)
			fixed[len(tok)] = alphabet[0] // 'A', the all-zero digit
			tok = fixed
		}
	}
	if len(tok)%4 == 1 {
		// Still unrecoverable: a single leftover digit carries no byte.
		return nil, false
	}

	decEnc := d.decodeEncoding()
	out := make([]byte, decEnc.DecodedLen(len(tok)))
	n, err := decEnc.Decode(out, tok)
	if err != nil {
		return nil, false
	}
	return out[:n], true
}

func stripTrailingPad(tok []byte, pad byte) []byte {
	if pad == 0 {
		return tok
	}
	end := len(tok)
	for end > 0 && tok[end-1] == pad {
		end--
	}
	return tok[:end]
}

// decodeEncoding returns an unpadded decoder for d's alphabet; decodeBase64Token
// always strips padding itself before decoding so raw encodings are correct
// here regardless of d.Pad.
func (d Base64Dialect) decodeEncoding() *base64.Encoding {
	return base64.NewEncoding(d.alphabet()).WithPadding(base64.NoPadding)
}

// NewBase64 builds the reversible, substring-capable base64 transformer.
func NewBase64(opts Base64Options) transform.Transformer {
	dialects := opts.Dialects
	if dialects == nil {
		dialects = DefaultBase64Dialects
	}
	matchers := buildBase64Matchers(dialects)

	return transform.Transformer{
		ID: transform.Base64,
		Encodings: func(v []byte) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				for _, d := range dialects {
					if !yield([]byte(d.encoding().EncodeToString(v))) {
						return
					}
				}
			}
		},
		ExtractDecode: func(h []byte, minLen int) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				for _, m := range matchers {
					for _, sp := range findAllIndex(m.re, h) {
						if sp.End-sp.Start < minLen {
							continue
						}
						if !boundaryOK(h, sp.Start, sp.End, m.inClass) {
							continue
						}
						tok := h[sp.Start:sp.End]
						for _, shift := range unalignedShifts(m.dialect, opts.TryUnalignedOffsets) {
							if shift >= len(tok) {
								continue
							}
							dec, ok := decodeBase64Token(tok[shift:], m.dialect)
							if !ok {
								continue
							}
							if !yield(dec) {
								return
							}
						}
					}
				}
			}
		},
	}
}
