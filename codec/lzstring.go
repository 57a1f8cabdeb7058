// LZ-String is the compact, dictionary-based compression scheme popularized
// by pieroxy/lz-string for squeezing text into URL- or localStorage-safe
// strings. No Go port of it appears anywhere in the example corpus, so the
// core LZW-style compressor/decompressor below is written directly against
// the well-known algorithm rather than against a third-party package; see
// DESIGN.md for why no pack dependency could serve this concern. The file
// layout (sliding dictionary state, a small bit-level reader/writer,
// variant-specific framing on top of one core codec) mirrors how
// WoozyMasta-lzo structures its own single-purpose compression codec.
package codec

import (
	"bytes"
	"iter"
	"unicode/utf16"

	"github.com/coregx/needlehunt/transform"
)

// LZStringVariant selects how the compressed 16-bit code stream (or, for
// Base64/URI, a further-encoded form of it) is framed into bytes.
type LZStringVariant int

const (
	// LZBytes compresses the raw byte-interpretation of the value (each
	// byte is one code unit, 0-255) and frames the result as big-endian
	// 16-bit pairs.
	LZBytes LZStringVariant = iota
	// LZUCS2 compresses the text-interpretation (UTF-16 code units of the
	// value decoded as UTF-8) and frames big-endian.
	LZUCS2
	// LZUTF16 is LZUCS2's little-endian framing.
	LZUTF16
	// LZBase64 base64-encodes the LZBytes framing, using the lz-string-uri
	// base64 dialect, chosen as (+,-) to stay distinct from percent-encoding.
	LZBase64
	// LZURI percent-encodes the LZBytes framing.
	LZURI
)

// LZStringOptions configures which variants are produced/attempted.
type LZStringOptions struct {
	// EncodeVariants defaults to all five variants when nil.
	EncodeVariants []LZStringVariant
	// DecodeVariants defaults to {LZBytes, LZUCS2, LZUTF16} when nil -- a
	// Base64/URI-variant buffer is expected to reach this decoder only
	// after the base64/URI transform has already unwrapped it.
	DecodeVariants []LZStringVariant
}

// DefaultLZStringOptions returns the standard variant sets.
func DefaultLZStringOptions() LZStringOptions {
	return LZStringOptions{
		EncodeVariants: []LZStringVariant{LZBytes, LZUCS2, LZUTF16, LZBase64, LZURI},
		DecodeVariants: []LZStringVariant{LZBytes, LZUCS2, LZUTF16},
	}
}

// NewLZString builds the reversible, non-substring-capable lz-string
// transformer.
func NewLZString(opts LZStringOptions) transform.Transformer {
	encodeVariants := opts.EncodeVariants
	if encodeVariants == nil {
		encodeVariants = DefaultLZStringOptions().EncodeVariants
	}
	decodeVariants := opts.DecodeVariants
	if decodeVariants == nil {
		decodeVariants = DefaultLZStringOptions().DecodeVariants
	}

	return transform.Transformer{
		ID: transform.LZString,
		Encodings: func(v []byte) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				byteUnits := unitsFromBytes(v)
				textUnits := unitsFromUTF8(v)
				for _, variant := range encodeVariants {
					out, ok := lzEncodeVariant(variant, byteUnits, textUnits)
					if ok && !yield(out) {
						return
					}
				}
			}
		},
		ExtractDecode: func(h []byte, minLen int) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				for _, variant := range decodeVariants {
					units, ok := lzFrameToUnits(variant, h)
					if !ok {
						continue
					}
					decoded, ok := decompressUnits(units)
					if !ok {
						continue
					}
					if len(decoded) < minLen {
						continue
					}
					if !yield(latin1Bytes(decoded)) {
						return
					}
					if !yield([]byte(utf16ToUTF8(decoded))) {
						return
					}
				}
			}
		},
		CompressedLength: func(v []byte) int {
			best := -1
			consider := func(units []uint16) {
				if n := len(compressUnits(units)) * 2; best < 0 || n < best {
					best = n
				}
			}
			consider(unitsFromBytes(v))
			consider(unitsFromUTF8(v))
			if best < 0 {
				return len(v)
			}
			return best
		},
	}
}

func lzEncodeVariant(variant LZStringVariant, byteUnits, textUnits []uint16) ([]byte, bool) {
	switch variant {
	case LZBytes:
		return frameUnitsBE(compressUnits(byteUnits)), true
	case LZUCS2:
		return frameUnitsBE(compressUnits(textUnits)), true
	case LZUTF16:
		return frameUnitsLE(compressUnits(textUnits)), true
	case LZBase64:
		wire := frameUnitsBE(compressUnits(byteUnits))
		enc := DialectLZStringURI.encoding()
		return []byte(enc.EncodeToString(wire)), true
	case LZURI:
		wire := frameUnitsBE(compressUnits(byteUnits))
		return []byte(percentEscape(string(wire))), true
	default:
		return nil, false
	}
}

func lzFrameToUnits(variant LZStringVariant, h []byte) ([]uint16, bool) {
	switch variant {
	case LZBytes, LZUCS2:
		return unframeUnitsBE(h), true
	case LZUTF16:
		return unframeUnitsLE(h), true
	default:
		return nil, false
	}
}

// unitsFromBytes is the "byte interpretation" of v: each byte is one code
// unit (0-255).
func unitsFromBytes(v []byte) []uint16 {
	units := make([]uint16, len(v))
	for i, b := range v {
		units[i] = uint16(b)
	}
	return units
}

// unitsFromUTF8 is the "text interpretation" of v: v is decoded as UTF-8
// and re-encoded as UTF-16 code units (identical to unitsFromBytes when v
// is pure ASCII).
func unitsFromUTF8(v []byte) []uint16 {
	return utf16.Encode([]rune(string(v)))
}

func latin1Bytes(units []uint16) []byte {
	out := make([]byte, len(units))
	for i, u := range units {
		out[i] = byte(u)
	}
	return out
}

func utf16ToUTF8(units []uint16) string {
	return string(utf16.Decode(units))
}

// frameUnitsBE/frameUnitsLE render a compressed code stream as raw wire
// bytes, two bytes per unit.
func frameUnitsBE(units []uint16) []byte {
	out := make([]byte, len(units)*2)
	for i, u := range units {
		out[2*i] = byte(u >> 8)
		out[2*i+1] = byte(u)
	}
	return out
}

func frameUnitsLE(units []uint16) []byte {
	out := make([]byte, len(units)*2)
	for i, u := range units {
		out[2*i] = byte(u)
		out[2*i+1] = byte(u >> 8)
	}
	return out
}

// unframeUnitsBE/unframeUnitsLE recover the compressed code stream from
// wire bytes, zero-padding an odd trailing byte first.
func unframeUnitsBE(h []byte) []uint16 {
	h = padEven(h)
	units := make([]uint16, len(h)/2)
	for i := range units {
		units[i] = uint16(h[2*i])<<8 | uint16(h[2*i+1])
	}
	return units
}

func unframeUnitsLE(h []byte) []uint16 {
	h = padEven(h)
	units := make([]uint16, len(h)/2)
	for i := range units {
		units[i] = uint16(h[2*i]) | uint16(h[2*i+1])<<8
	}
	return units
}

func padEven(h []byte) []byte {
	if len(h)%2 == 0 {
		return h
	}
	return append(bytes.Clone(h), 0)
}
