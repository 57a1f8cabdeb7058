// Package transform defines the transformer abstraction shared by every
// codec in needlehunt: a stable identity plus whichever subset of encode,
// decode, and compressed-length operations the codec supports.
//
// A transformer is modeled as a capability set rather than one interface per
// codec, so that a hash (encode-only) and form-data (decode-only) can share
// a single concrete type instead of forcing callers to type-switch over a
// family of interfaces.
package transform

import "iter"

// Identity names a transformer uniquely. It is the string recorded in a
// Chain and compared for equality by callers and tests, so implementations
// must keep it stable across releases.
//
// Parameterized variants (for example a truncated digest) are expected to
// use the "<alg>/<n-bytes>" spelling, e.g. "sha256/8".
type Identity string

// Identities of the transformers shipped in package codec.
const (
	MD5          Identity = "md5"
	SHA1         Identity = "sha1"
	SHA256       Identity = "sha256"
	SHA512       Identity = "sha512"
	Base64       Identity = "base64"
	Hex          Identity = "hex"
	URI          Identity = "uri"
	JSONString   Identity = "json-string"
	HTMLEntities Identity = "html-entities"
	FormData     Identity = "form-data"
	LZString     Identity = "lz-string"
	Compress     Identity = "compress"
)

// Chain is an ordered, outermost-first list of transformer identities. An
// empty Chain means a value (on the encode side) or a haystack (on the
// decode side, at the top recursion level) matched literally, with no
// transformation applied.
type Chain []Identity

// Prepend returns a new chain with id placed outermost, leaving c untouched.
func (c Chain) Prepend(id Identity) Chain {
	out := make(Chain, 0, len(c)+1)
	out = append(out, id)
	out = append(out, c...)
	return out
}

// Equal reports whether c and other name the same transformers in the same
// order.
func (c Chain) Equal(other Chain) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

func (c Chain) String() string {
	if len(c) == 0 {
		return "<literal>"
	}
	s := string(c[0])
	for _, id := range c[1:] {
		s += " > " + string(id)
	}
	return s
}

// Transformer implements any non-empty subset of Encodings, ExtractDecode,
// and CompressedLength. The zero value is not meaningful; build one via
// the constructors in package codec.
type Transformer struct {
	// ID is this transformer's stable identity.
	ID Identity

	// Encodings produces candidate encoded forms of v as a lazy sequence.
	// Nil for decode-only codecs (json-string, form-data).
	//
	// Implementations may do work between yields and must not assume the
	// sequence will be drained; a consumer that has what it needs is free
	// to stop ranging at any point.
	Encodings func(v []byte) iter.Seq[[]byte]

	// ExtractDecode scans h for substrings this codec recognizes and yields
	// their decoded contents. minLen is a heuristic lower bound on useful
	// candidate length: a codec MAY reject shorter candidates but must
	// never use minLen to reject a candidate that could decode to
	// something longer than minLen. A minLen of 0 means "no bound". Nil
	// for non-reversible codecs (the hashes).
	ExtractDecode func(h []byte, minLen int) iter.Seq[[]byte]

	// CompressedLength, when non-nil, returns the length of the shortest
	// compressed representation of v for this transformer's configured
	// formats/variants. Only meaningful for compressing codecs (lz-string,
	// compress); used to tighten the minimum encoded-length bound.
	CompressedLength func(v []byte) int
}

// Reversible reports whether this transformer exposes ExtractDecode, i.e.
// whether it can participate in a haystack decode chain.
func (t Transformer) Reversible() bool { return t.ExtractDecode != nil }

// Encoder reports whether this transformer exposes Encodings.
func (t Transformer) Encoder() bool { return t.Encodings != nil }

// Compressor reports whether this transformer exposes CompressedLength.
func (t Transformer) Compressor() bool { return t.CompressedLength != nil }
