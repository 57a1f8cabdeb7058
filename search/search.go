// Package search implements the haystack half of needlehunt: given a
// populated needle.Searcher, recursively apply decoders to a haystack,
// racing branches concurrently, until a needle is found literally or the
// recursion bound is exhausted.
package search

import (
	"errors"
	"sync"

	"github.com/coregx/needlehunt/internal/contracterr"
	"github.com/coregx/needlehunt/internal/fingerprint"
	"github.com/coregx/needlehunt/needle"
	"github.com/coregx/needlehunt/transform"
)

// ErrNoValuesAdded is the sentinel FindValueIn wraps in a
// *contracterr.ContractError when called on a searcher with no values
// added: a contract violation the caller should fix, so this fails fast
// rather than silently reporting no match. The searcher remains usable
// afterward. Match it with errors.Is, since FindValueIn never returns it
// bare.
var ErrNoValuesAdded = errors.New("search: FindValueIn called before any value was added")

// Options configures FindValueIn's recursive decode walk.
type Options struct {
	// MaxDecodeLayers bounds the recursion depth of the decode walk.
	MaxDecodeLayers int
	// Decoders is the transformer list consulted for ExtractDecode. Only
	// transformers exposing ExtractDecode participate; the rest are
	// ignored.
	Decoders []transform.Transformer
}

// DefaultOptions returns the standard defaults: ten decode layers against
// the full default transformer list.
func DefaultOptions(defaults []transform.Transformer) Options {
	return Options{MaxDecodeLayers: 10, Decoders: defaults}
}

// FindValueIn searches haystack for any needle in ns, applying opts.Decoders
// recursively up to opts.MaxDecodeLayers deep. The returned chain is
// outermost-first; nil means no needle was found within the bound.
func FindValueIn(ns *needle.Searcher, haystack []byte, opts Options) (transform.Chain, error) {
	if len(ns.Values()) == 0 {
		return nil, contracterr.Wrap("search.FindValueIn", ErrNoValuesAdded)
	}

	minLen := minEncodedLength(ns, opts.Decoders)
	ls := newLiteralScanner(ns.Needles())
	seen := newGuardedSeen()

	return findImpl(haystack, opts.MaxDecodeLayers, opts.Decoders, minLen, seen, ls), nil
}

// minEncodedLength computes a heuristic lower bound: the shortest admitted
// needle, tightened by any compressing decoder's shortest compressed
// rendering of any added value.
func minEncodedLength(ns *needle.Searcher, decoders []transform.Transformer) int {
	best := ns.MinNeedleLength()
	for _, d := range decoders {
		if !d.Compressor() {
			continue
		}
		for _, v := range ns.Values() {
			if n := d.CompressedLength(v); best == 0 || n < best {
				best = n
			}
		}
	}
	return best
}

// guardedSeen makes fingerprint.LayerSeen safe to share across the
// goroutines findImpl races against each other within one FindValueIn call:
// each call owns its own layer-seen map, but that map is visited from
// multiple goroutines within the same call.
type guardedSeen struct {
	mu sync.Mutex
	m  fingerprint.LayerSeen
}

func newGuardedSeen() *guardedSeen {
	return &guardedSeen{m: make(fingerprint.LayerSeen)}
}

func (g *guardedSeen) admit(fp uint32, layer int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.Admit(fp, layer)
}

// findImpl is the recursive engine behind FindValueIn.
func findImpl(h []byte, layer int, decoders []transform.Transformer, minLen int, seen *guardedSeen, ls *literalScanner) transform.Chain {
	if chain, ok := ls.find(h); ok {
		return chain
	}
	if layer == 0 {
		return nil
	}

	var reversible []transform.Transformer
	for _, d := range decoders {
		if d.Reversible() {
			reversible = append(reversible, d)
		}
	}
	if len(reversible) == 0 {
		return nil
	}

	results := make(chan transform.Chain, len(reversible))
	var wg sync.WaitGroup
	for _, d := range reversible {
		wg.Add(1)
		go func(d transform.Transformer) {
			defer wg.Done()
			results <- findDecoderBranch(d, h, layer, decoders, minLen, seen, ls)
		}(d)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Race the per-decoder branches: the first non-nil result wins: losing
	// goroutines keep running to completion (no cancellation of losing branches)
	// but their eventual sends land in an already-sized buffer, so nothing
	// blocks once this function returns early.
	for chain := range results {
		if chain != nil {
			return chain
		}
	}
	return nil
}

// findDecoderBranch runs one decoder's ExtractDecode over h, races the
// recursive findImpl call for each accepted candidate, and prepends d's
// identity to whichever candidate wins.
func findDecoderBranch(d transform.Transformer, h []byte, layer int, decoders []transform.Transformer, minLen int, seen *guardedSeen, ls *literalScanner) transform.Chain {
	var candidates [][]byte
	for c := range d.ExtractDecode(h, minLen) {
		fp := fingerprint.Of(c)
		if !seen.admit(fp, layer) {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil
	}

	results := make(chan transform.Chain, len(candidates))
	var wg sync.WaitGroup
	for _, c := range candidates {
		wg.Add(1)
		go func(c []byte) {
			defer wg.Done()
			results <- findImpl(c, layer-1, decoders, minLen, seen, ls)
		}(c)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	for chain := range results {
		if chain != nil {
			return chain.Prepend(d.ID)
		}
	}
	return nil
}
