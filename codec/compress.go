package codec

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"
	"iter"

	"github.com/andybalholm/brotli"

	"github.com/coregx/needlehunt/transform"
)

// CompressFormat is one of the generic compression containers this
// transformer recognizes. Unlike lz-string, none of these are
// custom-rolled: each has an established Go package (stdlib for
// gzip/zlib/deflate, brotli from the wider ecosystem).
type CompressFormat int

const (
	Gzip CompressFormat = iota
	Zlib
	DeflateRaw
	Brotli
)

// gzipOS is the single byte at offset 9 of a gzip header identifying the
// originating OS (RFC 1952 §2.3.1). needlehunt re-encodes under each of
// these since a haystack may have been produced on any platform and the
// byte has no effect on decompression; trying all three at encode time lets
// the search engine's fingerprint-based needle matching line up regardless
// of which one a real haystack used.
type gzipOS byte

const (
	gzipOSUnix    gzipOS = 3
	gzipOSMacOS   gzipOS = 7
	gzipOSWindows gzipOS = 10
)

var gzipOSVariants = []gzipOS{gzipOSUnix, gzipOSWindows, gzipOSMacOS}

// NewCompress builds the reversible, non-substring-capable generic
// compression transformer. Like lz-string, a compressed run has no
// self-delimiting marker a scanner could key off mid-haystack, so
// ExtractDecode only ever considers the haystack as a whole.
func NewCompress() transform.Transformer {
	return transform.Transformer{
		ID: transform.Compress,
		Encodings: func(v []byte) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				for _, os := range gzipOSVariants {
					if buf, ok := compressGzip(v, os); ok && !yield(buf) {
						return
					}
				}
				if buf, ok := compressZlib(v); ok && !yield(buf) {
					return
				}
				if buf, ok := compressDeflateRaw(v); ok && !yield(buf) {
					return
				}
				if buf, ok := compressBrotli(v); ok && !yield(buf) {
					return
				}
			}
		},
		ExtractDecode: func(h []byte, minLen int) iter.Seq[[]byte] {
			return func(yield func([]byte) bool) {
				dec, ok := decompressAny(h)
				if !ok || len(dec) < minLen {
					return
				}
				yield(dec)
			}
		},
		CompressedLength: func(v []byte) int {
			best := -1
			consider := func(buf []byte, ok bool) {
				if ok && (best < 0 || len(buf) < best) {
					best = len(buf)
				}
			}
			if buf, ok := compressGzip(v, gzipOSUnix); ok {
				consider(buf, ok)
			}
			consider(compressZlib(v))
			consider(compressDeflateRaw(v))
			consider(compressBrotli(v))
			if best < 0 {
				return len(v)
			}
			return best
		},
	}
}

func compressGzip(v []byte, os gzipOS) ([]byte, bool) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(v); err != nil {
		return nil, false
	}
	if err := w.Close(); err != nil {
		return nil, false
	}
	out := buf.Bytes()
	if len(out) > 9 {
		out[9] = byte(os)
	}
	return out, true
}

func compressZlib(v []byte) ([]byte, bool) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(v); err != nil {
		return nil, false
	}
	if err := w.Close(); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

func compressDeflateRaw(v []byte) ([]byte, bool) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, false
	}
	if _, err := w.Write(v); err != nil {
		return nil, false
	}
	if err := w.Close(); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

func compressBrotli(v []byte) ([]byte, bool) {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(v); err != nil {
		return nil, false
	}
	if err := w.Close(); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// decompressAny runs a header-sniffing cascade: gzip's two-byte magic,
// then zlib's 16-bit header (a multiple of 31), then
// a raw-deflate heuristic on the first byte's block-type bits, falling
// back to brotli last since it has no fixed magic number at all.
func decompressAny(h []byte) ([]byte, bool) {
	if len(h) >= 2 && h[0] == 0x1F && h[1] == 0x8B {
		return readAll(func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) }, h)
	}
	if len(h) >= 2 {
		header := uint16(h[0])<<8 | uint16(h[1])
		if header%31 == 0 && h[0]&0x0F == 8 {
			return readAll(func(r io.Reader) (io.ReadCloser, error) { return zlib.NewReader(r) }, h)
		}
	}
	if len(h) >= 1 && isPlausibleDeflateBlockHeader(h[0]) {
		if dec, ok := readAll(func(r io.Reader) (io.ReadCloser, error) {
			return flate.NewReader(r), nil
		}, h); ok {
			return dec, true
		}
	}
	return readAll(func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	}, h)
}

// isPlausibleDeflateBlockHeader checks the reserved block-type bits of a
// raw deflate stream's first byte: bit 0 is BFINAL, bits 1-2 are BTYPE,
// and 0b11 (3) is a reserved, never-valid BTYPE.
func isPlausibleDeflateBlockHeader(b byte) bool {
	btype := (b >> 1) & 0x03
	return btype != 3
}

func readAll(open func(io.Reader) (io.ReadCloser, error), h []byte) ([]byte, bool) {
	rc, err := open(bytes.NewReader(h))
	if err != nil {
		return nil, false
	}
	defer rc.Close()
	dec, err := io.ReadAll(rc)
	if err != nil || len(dec) == 0 {
		return nil, false
	}
	return dec, true
}
