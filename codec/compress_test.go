package codec

import (
	"bytes"
	"testing"
)

func TestCompressRoundTripAllVariants(t *testing.T) {
	c := NewCompress()
	value := []byte("the quick brown fox jumps over the lazy dog, repeatedly, for compressibility")

	var variants int
	for enc := range c.Encodings(value) {
		variants++
		var found bool
		for dec := range c.ExtractDecode(enc, 0) {
			if bytes.Equal(dec, value) {
				found = true
			}
		}
		if !found {
			t.Errorf("variant %d: did not decode back to the original value", variants)
		}
	}
	if variants < 6 {
		t.Errorf("Encodings() produced %d variants, want at least 6 (gzip x3 OS bytes + zlib + deflate-raw + brotli)", variants)
	}
}

func TestCompressGzipOSByteVariants(t *testing.T) {
	value := []byte("gzip os byte variant check")
	var osBytes []byte
	for _, os := range gzipOSVariants {
		buf, ok := compressGzip(value, os)
		if !ok {
			t.Fatalf("compressGzip(%v) failed", os)
		}
		if len(buf) <= 9 {
			t.Fatalf("gzip output too short to carry an OS byte: %d bytes", len(buf))
		}
		osBytes = append(osBytes, buf[9])

		dec, ok := decompressAny(buf)
		if !ok || !bytes.Equal(dec, value) {
			t.Errorf("decompressAny did not recover the value for OS byte %d", os)
		}
	}
	want := []byte{byte(gzipOSUnix), byte(gzipOSWindows), byte(gzipOSMacOS)}
	if !bytes.Equal(osBytes, want) {
		t.Errorf("OS bytes = %v, want %v", osBytes, want)
	}
}

func TestCompressHeaderSniffingCascade(t *testing.T) {
	value := []byte("sniff me please, this value compresses just fine")

	gz, _ := compressGzip(value, gzipOSUnix)
	zl, _ := compressZlib(value)
	df, _ := compressDeflateRaw(value)
	br, _ := compressBrotli(value)

	for name, buf := range map[string][]byte{"gzip": gz, "zlib": zl, "deflate-raw": df, "brotli": br} {
		dec, ok := decompressAny(buf)
		if !ok {
			t.Errorf("%s: decompressAny failed to sniff and decode", name)
			continue
		}
		if !bytes.Equal(dec, value) {
			t.Errorf("%s: decoded %q, want %q", name, dec, value)
		}
	}
}

func TestCompressRejectsRandomBytes(t *testing.T) {
	garbage := []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0x10, 0x20, 0x30}
	if _, ok := decompressAny(garbage); ok {
		t.Error("decompressAny accepted non-compressed garbage")
	}
}

func TestCompressedLengthIsPositiveAndBounded(t *testing.T) {
	c := NewCompress()
	value := bytes.Repeat([]byte("compress me "), 50)
	n := c.CompressedLength(value)
	if n <= 0 {
		t.Fatalf("CompressedLength = %d, want > 0", n)
	}
	if n >= len(value) {
		t.Errorf("CompressedLength = %d, want smaller than the %d-byte repetitive input", n, len(value))
	}
}
