package codec

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"iter"

	"github.com/coregx/needlehunt/transform"
)

// NewHash builds a non-reversible transformer around a fixed-output digest
// function. Encodings yields exactly one buffer: sum(prefix ++ v ++ suffix).
// prefix and suffix let a caller model salted or keyed digest schemes
// without a dedicated transformer per scheme; both are typically nil.
//
// NewHash never sets ExtractDecode: a hash is a one-way function, so it
// cannot participate in a haystack decode chain.
func NewHash(id transform.Identity, sum func([]byte) []byte, prefix, suffix []byte) transform.Transformer {
	return transform.Transformer{
		ID: id,
		Encodings: func(v []byte) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				buf := make([]byte, 0, len(prefix)+len(v)+len(suffix))
				buf = append(buf, prefix...)
				buf = append(buf, v...)
				buf = append(buf, suffix...)
				yield(sum(buf))
			}
		},
	}
}

func sumMD5(b []byte) []byte    { s := md5.Sum(b); return s[:] }
func sumSHA1(b []byte) []byte   { s := sha1.Sum(b); return s[:] }
func sumSHA256(b []byte) []byte { s := sha256.Sum256(b); return s[:] }
func sumSHA512(b []byte) []byte { s := sha512.Sum512(b); return s[:] }

// MD5, SHA1, SHA256, and SHA512 are the non-reversible transformers for the
// standard digest set. Truncated or salted variants can be built directly
// with NewHash and a parameterized Identity such as "sha256/8".
var (
	MD5    = NewHash(transform.MD5, sumMD5, nil, nil)
	SHA1   = NewHash(transform.SHA1, sumSHA1, nil, nil)
	SHA256 = NewHash(transform.SHA256, sumSHA256, nil, nil)
	SHA512 = NewHash(transform.SHA512, sumSHA512, nil, nil)
)
