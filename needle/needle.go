// Package needle implements the precomputation half of needlehunt: given a
// secret value, recursively enumerate its encoded forms up to a configured
// depth, deduplicated by fingerprint, and track the transformer chain that
// produced each form.
package needle

import (
	"errors"
	"fmt"

	"github.com/coregx/needlehunt/internal/contracterr"
	"github.com/coregx/needlehunt/internal/fingerprint"
	"github.com/coregx/needlehunt/transform"
)

// ErrEmptyValue is the sentinel AddValue wraps in a *contracterr.ContractError
// when asked to add a zero-length value: a contract violation the caller
// should fix, so this fails fast rather than silently doing nothing. The
// searcher remains usable afterward. Match it with errors.Is, since AddValue
// never returns it bare.
var ErrEmptyValue = errors.New("needle: value must be non-empty")

// Value is an immutable secret byte buffer.
type Value []byte

// Needle is a concrete byte buffer the searcher will look for literally,
// together with the outermost-first transformer chain that produced it
// from some original Value. An empty Chain means Buffer is the value
// itself.
type Needle struct {
	Buffer []byte
	Chain  transform.Chain
}

// Options configures AddValue's recursive encoding walk.
type Options struct {
	// MaxEncodeLayers bounds how many encoder applications are chained
	// past the original value.
	MaxEncodeLayers int
	// Encoders is the transformer list consulted for encodings(). Only
	// transformers exposing Encodings participate; the rest are ignored.
	Encoders []transform.Transformer
	// EndWithNonReversibleLayer requires every search-set needle's
	// outermost layer to be a non-reversible transformer: a needle the
	// search engine's own decoders could already reach by unwrapping a
	// reversible layer is redundant to store.
	EndWithNonReversibleLayer bool
}

// DefaultOptions returns the standard defaults: two encode layers, the
// full default transformer list, terminating in a non-reversible layer.
func DefaultOptions(defaults []transform.Transformer) Options {
	return Options{
		MaxEncodeLayers:           2,
		Encoders:                  defaults,
		EndWithNonReversibleLayer: true,
	}
}

// Searcher accumulates Values and the Needles derived from them. The zero
// value is not usable; construct with New.
type Searcher struct {
	values          []Value
	valueFPs        map[uint32]bool
	needles         []Needle
	needleFPs       map[uint32]bool
	minNeedleLength int
}

// New returns an empty Searcher.
func New() *Searcher {
	return &Searcher{
		valueFPs:  make(map[uint32]bool),
		needleFPs: make(map[uint32]bool),
	}
}

// Values returns the Values added so far, outermost caller's slice is a
// copy-free view; callers must not mutate it.
func (s *Searcher) Values() []Value { return s.values }

// Needles returns the Needles accumulated so far; callers must not mutate
// it.
func (s *Searcher) Needles() []Needle { return s.needles }

// MinNeedleLength is the shortest needle buffer admitted so far, used by
// the search engine to compute its minimum encoded-length bound. Zero if no
// needle has been admitted yet.
func (s *Searcher) MinNeedleLength() int { return s.minNeedleLength }

// AddValue adds value (deduplicated by fingerprint) and recursively
// precomputes its encoded forms.
func (s *Searcher) AddValue(value Value, opts Options) error {
	if len(value) == 0 {
		return contracterr.Wrap("needle.AddValue", ErrEmptyValue)
	}

	vfp := fingerprint.Of(value)
	if !s.valueFPs[vfp] {
		s.valueFPs[vfp] = true
		s.values = append(s.values, value)
	}

	root := Needle{Buffer: value, Chain: nil}
	s.insertNeedle(root)

	if opts.MaxEncodeLayers <= 0 {
		return nil
	}

	seen := make(fingerprint.LayerSeen)
	seen.AdmitShallower(fingerprint.Of(value), 0)
	s.addEncodings(opts.Encoders, opts.EndWithNonReversibleLayer, root, opts.MaxEncodeLayers-1, 0, seen)
	return nil
}

// addEncodings is the recursive engine behind AddValue. layer counts
// upward from the root (layer 0) so that seen's layer-parameterized
// admission rule can tell a shallow revisit from a deep one.
func (s *Searcher) addEncodings(encoders []transform.Transformer, endWithNonReversible bool, parent Needle, maxExtraLayers, layer int, seen fingerprint.LayerSeen) {
	childLayer := layer + 1

	type admitted struct {
		needle Needle
	}
	var children []admitted

	for _, e := range encoders {
		if !e.Encoder() {
			continue
		}
		if maxExtraLayers == 0 && endWithNonReversible && e.Reversible() {
			continue // must terminate in a non-reversible layer
		}
		for b := range e.Encodings(parent.Buffer) {
			child := Needle{Buffer: b, Chain: parent.Chain.Prepend(e.ID)}
			fp := fingerprint.Of(b)
			if !seen.AdmitShallower(fp, childLayer) {
				continue
			}
			children = append(children, admitted{needle: child})
		}
	}

	for _, c := range children {
		if !endWithNonReversible || isNonReversibleOutermost(c.needle.Chain, encoders) {
			s.insertNeedle(c.needle)
		}
	}

	if maxExtraLayers > 0 {
		for _, c := range children {
			s.addEncodings(encoders, endWithNonReversible, c.needle, maxExtraLayers-1, childLayer, seen)
		}
	}
}

// isNonReversibleOutermost reports whether chain's outermost transformer
// identity names a non-reversible encoder among encoders.
func isNonReversibleOutermost(chain transform.Chain, encoders []transform.Transformer) bool {
	if len(chain) == 0 {
		return false
	}
	for _, e := range encoders {
		if e.ID == chain[0] {
			return !e.Reversible()
		}
	}
	return false
}

// insertNeedle appends n to the search set if its fingerprint is new,
// updating minNeedleLength.
func (s *Searcher) insertNeedle(n Needle) {
	fp := fingerprint.Of(n.Buffer)
	if s.needleFPs[fp] {
		return
	}
	s.needleFPs[fp] = true
	s.needles = append(s.needles, n)
	if len(s.needles) == 1 || len(n.Buffer) < s.minNeedleLength {
		s.minNeedleLength = len(n.Buffer)
	}
}

func (s *Searcher) String() string {
	return fmt.Sprintf("needle.Searcher{values=%d, needles=%d, minNeedleLength=%d}", len(s.values), len(s.needles), s.minNeedleLength)
}
