package search

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/needlehunt/needle"
	"github.com/coregx/needlehunt/transform"
)

// literalScanner answers findImpl's first question: does h contain any
// needle's buffer as a contiguous subsequence? A single Aho-Corasick
// automaton built once per FindValueIn call, seeded with every needle
// buffer, turns what would otherwise be one bytes.Contains scan per needle
// into a single linear pass over h -- the same multi-pattern-alternation
// role ahocorasick.Automaton plays for coregex's own literal-heavy regex
// compilation.
type literalScanner struct {
	needles []needle.Needle
	auto    *ahocorasick.Automaton
}

func newLiteralScanner(needles []needle.Needle) *literalScanner {
	ls := &literalScanner{needles: needles}
	if len(needles) == 0 {
		return ls
	}
	b := ahocorasick.NewBuilder()
	for _, n := range needles {
		b.AddPattern(n.Buffer)
	}
	auto, err := b.Build()
	if err != nil {
		return ls // fall back to the linear scan in find
	}
	ls.auto = auto
	return ls
}

// find returns the chain of the first needle contained in h.
func (ls *literalScanner) find(h []byte) (transform.Chain, bool) {
	if ls.auto != nil {
		m := ls.auto.Find(h, 0)
		if m == nil {
			return nil, false
		}
		if chain, ok := ls.identify(h[m.Start:m.End]); ok {
			return chain, true
		}
		return nil, false
	}
	for _, n := range ls.needles {
		if bytes.Contains(h, n.Buffer) {
			return n.Chain, true
		}
	}
	return nil, false
}

// identify maps a matched byte span back to the needle it came from. The
// automaton only ever matches exact needle buffers, so an exact-length,
// exact-bytes scan over the (typically small) needle set is enough.
func (ls *literalScanner) identify(matched []byte) (transform.Chain, bool) {
	for _, n := range ls.needles {
		if bytes.Equal(n.Buffer, matched) {
			return n.Chain, true
		}
	}
	return nil, false
}
