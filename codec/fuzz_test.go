package codec

import (
	"bytes"
	"testing"
)

// Fuzz*RoundTrip mirror fuzz_stdlib_test.go's shape: seed with known-tricky
// inputs, then let the fuzzer look for a byte value whose every encoding
// fails to decode back to itself.

func FuzzBase64RoundTrip(f *testing.F) {
	seeds := [][]byte{
		[]byte("a"),
		[]byte("first"),
		[]byte("second1234567890"),
		{0x00, 0xFF, 0x10},
		[]byte("日本語"),
	}
	for _, s := range seeds {
		f.Add(s)
	}

	b64 := NewBase64(DefaultBase64Options())
	f.Fuzz(func(t *testing.T, value []byte) {
		if len(value) == 0 {
			return
		}
		var found bool
		for enc := range b64.Encodings(value) {
			for dec := range b64.ExtractDecode(enc, 0) {
				if bytes.Equal(dec, value) {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("round trip: no base64 encoding of %x decoded back to itself", value)
		}
	})
}

func FuzzLZStringRoundTrip(f *testing.F) {
	seeds := [][]byte{
		[]byte("a"),
		[]byte("first"),
		bytes.Repeat([]byte("a"), 40),
		{0x00, 0xFF, 0x10},
		[]byte("日本語"),
	}
	for _, s := range seeds {
		f.Add(s)
	}

	lz := NewLZString(DefaultLZStringOptions())
	f.Fuzz(func(t *testing.T, value []byte) {
		if len(value) == 0 {
			return
		}
		var found bool
		for enc := range lz.Encodings(value) {
			for dec := range lz.ExtractDecode(enc, 0) {
				if bytes.Equal(dec, value) {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("round trip: no lz-string encoding of %x decoded back to itself", value)
		}
	})
}

func FuzzCompressRoundTrip(f *testing.F) {
	seeds := [][]byte{
		[]byte("a"),
		[]byte("first"),
		bytes.Repeat([]byte("needle"), 50),
		{0x00, 0xFF, 0x10},
	}
	for _, s := range seeds {
		f.Add(s)
	}

	cx := NewCompress()
	f.Fuzz(func(t *testing.T, value []byte) {
		if len(value) == 0 {
			return
		}
		var found bool
		for enc := range cx.Encodings(value) {
			for dec := range cx.ExtractDecode(enc, 0) {
				if bytes.Equal(dec, value) {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("round trip: no compression encoding of %x decoded back to itself", value)
		}
	})
}
