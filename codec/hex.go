package codec

import (
	"encoding/hex"
	"iter"

	coregex "github.com/coregx/coregex"

	"github.com/coregx/needlehunt/transform"
)

// HexCase selects which of the lowercase/uppercase hex variants to emit and
// scan for. Casing never mixes within a single match.
type HexCase int

const (
	HexLower HexCase = 1 << iota
	HexUpper
)

// HexOptions configures the hex transformer.
type HexOptions struct {
	// Cases defaults to HexLower|HexUpper when zero.
	Cases HexCase
}

// DefaultHexOptions enables both casings.
func DefaultHexOptions() HexOptions {
	return HexOptions{Cases: HexLower | HexUpper}
}

var hexLowerRE = coregex.MustCompile(`\b(?:[a-f0-9]{2})+\b`)
var hexUpperRE = coregex.MustCompile(`\b(?:[A-F0-9]{2})+\b`)

// NewHex builds the reversible, substring-capable hex transformer.
func NewHex(opts HexOptions) transform.Transformer {
	cases := opts.Cases
	if cases == 0 {
		cases = HexLower | HexUpper
	}

	return transform.Transformer{
		ID: transform.Hex,
		Encodings: func(v []byte) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				if cases&HexLower != 0 {
					if !yield([]byte(hex.EncodeToString(v))) {
						return
					}
				}
				if cases&HexUpper != 0 {
					enc := []byte(hex.EncodeToString(v))
					upperASCII(enc)
					if !yield(enc) {
						return
					}
				}
			}
		},
		ExtractDecode: func(h []byte, minLen int) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				if cases&HexLower != 0 {
					for _, sp := range findAllIndex(hexLowerRE, h) {
						if !yieldHexMatch(h, sp, minLen, yield) {
							return
						}
					}
				}
				if cases&HexUpper != 0 {
					for _, sp := range findAllIndex(hexUpperRE, h) {
						if !yieldHexMatch(h, sp, minLen, yield) {
							return
						}
					}
				}
			}
		},
	}
}

func yieldHexMatch(h []byte, sp span, minLen int, yield func([]byte) bool) bool {
	tok := h[sp.Start:sp.End]
	if len(tok) < minLen || len(tok)%2 != 0 {
		return true
	}
	dec, err := hex.DecodeString(string(tok))
	if err != nil {
		return true
	}
	return yield(dec)
}

func upperASCII(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}
