package codec

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

func collect(seq func(yield func([]byte) bool)) [][]byte {
	var out [][]byte
	seq(func(b []byte) bool {
		out = append(out, bytes.Clone(b))
		return true
	})
	return out
}

func TestHashEncodingsYieldsSingleDigest(t *testing.T) {
	want := sha256.Sum256([]byte("value2"))

	got := collect(SHA256.Encodings([]byte("value2")))
	if len(got) != 1 {
		t.Fatalf("Encodings() yielded %d buffers, want 1", len(got))
	}
	if !bytes.Equal(got[0], want[:]) {
		t.Errorf("Encodings() = %x, want %x", got[0], want)
	}
}

func TestHashIsNonReversible(t *testing.T) {
	for _, h := range []struct {
		name string
		t    interface{ Reversible() bool }
	}{
		{"md5", MD5}, {"sha1", SHA1}, {"sha256", SHA256}, {"sha512", SHA512},
	} {
		if h.t.Reversible() {
			t.Errorf("%s.Reversible() = true, want false", h.name)
		}
	}
}

func TestHashWithPrefixSuffix(t *testing.T) {
	prefixed := NewHash("sha256-salted", sumSHA256, []byte("salt:"), nil)
	want := sha256.Sum256([]byte("salt:secret"))

	got := collect(prefixed.Encodings([]byte("secret")))
	if len(got) != 1 || !bytes.Equal(got[0], want[:]) {
		t.Errorf("salted Encodings() = %x, want %x", got, want)
	}
}
