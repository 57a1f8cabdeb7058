package codec

import (
	"bytes"
	"testing"
)

func TestHTMLEntitiesRoundTrip(t *testing.T) {
	he := NewHTMLEntities()
	value := []byte(`"some value!" 😎`)

	var found bool
	for enc := range he.Encodings(value) {
		for dec := range he.ExtractDecode(enc, 0) {
			if bytes.Equal(dec, value) {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("round trip: no html-entities encoding decoded back to the original value")
	}
}

func TestHTMLEntitiesQuoteVariant(t *testing.T) {
	he := NewHTMLEntities()
	var variants [][]byte
	for enc := range he.Encodings([]byte(`"quoted"`)) {
		variants = append(variants, enc)
	}
	if len(variants) != 2 {
		t.Fatalf("Encodings() yielded %d variants, want 2 (full + quote-restored)", len(variants))
	}
	if bytes.Contains(variants[1], []byte("&#34;")) {
		t.Errorf("second variant %q still contains &#34;, want literal quotes restored", variants[1])
	}
}
