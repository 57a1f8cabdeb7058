// Package needlehunt locates a user-supplied secret byte value inside an
// opaque haystack buffer, even after it has passed through one or more
// reversible encodings (base64, hex, URI-percent encoding, JSON-string
// escaping, HTML entities, multipart/form-data extraction, LZ-String, or
// generic Zlib/Brotli compression) and/or non-reversible layers
// (cryptographic hashes). It is built for forensic inspection of captured
// web traffic: given a known identifier, determine whether some request or
// response actually carries it, in whatever disguise.
//
// A Searcher accumulates secret values with AddValue, which precomputes
// their encoded forms up front (package needle), then looks for any of
// them inside a haystack with FindValueIn, which recursively decodes
// candidate sub-regions of the haystack (package search). Both halves
// share the transformer definitions in package codec.
package needlehunt

import (
	"github.com/coregx/needlehunt/codec"
	"github.com/coregx/needlehunt/needle"
	"github.com/coregx/needlehunt/search"
	"github.com/coregx/needlehunt/transform"
)

// Searcher is the package's external entry point: add one or more values,
// then ask whether a haystack leaks any of them.
type Searcher struct {
	ns       *needle.Searcher
	defaults []transform.Transformer
}

// New constructs an empty Searcher. When defaultTransformers is non-empty
// it replaces the standard transformer list for every subsequent AddValue
// and FindValueIn call that doesn't supply its own options.
func New(defaultTransformers ...transform.Transformer) *Searcher {
	defaults := codec.Defaults()
	if len(defaultTransformers) > 0 {
		defaults = defaultTransformers
	}
	return &Searcher{ns: needle.New(), defaults: defaults}
}

// FromValues is a convenience constructor: build a Searcher and add each
// value under the default AddValue options.
func FromValues(values ...[]byte) (*Searcher, error) {
	s := New()
	for _, v := range values {
		if err := s.AddValue(v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddValue adds value to the searcher using the default encode options
// (two encode layers, the searcher's transformer list, terminating in a
// non-reversible layer). Use AddValueWithOptions for finer control.
func (s *Searcher) AddValue(value []byte) error {
	return s.ns.AddValue(needle.Value(value), needle.DefaultOptions(s.defaults))
}

// AddValueWithOptions adds value under caller-supplied encode options.
func (s *Searcher) AddValueWithOptions(value []byte, opts needle.Options) error {
	return s.ns.AddValue(needle.Value(value), opts)
}

// FindValueIn searches haystack for any added value using the default
// decode options (ten decode layers against the searcher's transformer
// list). The returned chain is outermost-first; nil means no match was
// found within the recursion bound.
func (s *Searcher) FindValueIn(haystack []byte) (transform.Chain, error) {
	return search.FindValueIn(s.ns, haystack, search.DefaultOptions(s.defaults))
}

// FindValueInWithOptions searches haystack under caller-supplied decode
// options.
func (s *Searcher) FindValueInWithOptions(haystack []byte, opts search.Options) (transform.Chain, error) {
	return search.FindValueIn(s.ns, haystack, opts)
}

// Needles exposes the searcher's accumulated needles, mainly for tests and
// diagnostics.
func (s *Searcher) Needles() []needle.Needle { return s.ns.Needles() }
