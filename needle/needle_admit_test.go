package needle

import (
	"iter"
	"testing"

	"github.com/coregx/needlehunt/transform"
)

// TestAddEncodingsAdmitsShallowerRevisitOverDeeperFirstDiscovery exercises
// the case where two sibling branches of the encode tree converge on the
// same fingerprint at different depths, with the deeper occurrence
// discovered first by DFS order: X -(p)-> A -(p)-> M -(p)-> TARGET reaches
// TARGET at depth 3, leaving budget for only one more layer, before
// X -(q)-> B -(q)-> TARGET reaches it again at depth 2 with two layers of
// budget still unspent. Only the shallower rediscovery has enough
// remaining budget to encode TARGET -(r)-> FINAL -(s)-> FINAL2, so FINAL2
// is reachable at all only if that rediscovery is admitted.
func TestAddEncodingsAdmitsShallowerRevisitOverDeeperFirstDiscovery(t *testing.T) {
	mkEncoder := func(id transform.Identity, fn func([]byte) ([]byte, bool)) transform.Transformer {
		return transform.Transformer{
			ID: id,
			Encodings: func(v []byte) iter.Seq[[]byte] {
				return func(yield func([]byte) bool) {
					if out, ok := fn(v); ok {
						yield(out)
					}
				}
			},
		}
	}

	p := mkEncoder("p-test", func(v []byte) ([]byte, bool) {
		switch string(v) {
		case "X":
			return []byte("A"), true
		case "A":
			return []byte("M"), true
		case "M":
			return []byte("TARGET"), true
		}
		return nil, false
	})
	q := mkEncoder("q-test", func(v []byte) ([]byte, bool) {
		switch string(v) {
		case "X":
			return []byte("B"), true
		case "B":
			return []byte("TARGET"), true
		}
		return nil, false
	})
	r := mkEncoder("r-test", func(v []byte) ([]byte, bool) {
		if string(v) == "TARGET" {
			return []byte("FINAL"), true
		}
		return nil, false
	})
	sEnc := mkEncoder("s-test", func(v []byte) ([]byte, bool) {
		if string(v) == "FINAL" {
			return []byte("FINAL2"), true
		}
		return nil, false
	})

	searcher := New()
	opts := Options{
		MaxEncodeLayers:           4,
		Encoders:                  []transform.Transformer{p, q, r, sEnc},
		EndWithNonReversibleLayer: false,
	}
	if err := searcher.AddValue(Value("X"), opts); err != nil {
		t.Fatalf("AddValue: %v", err)
	}

	chains := chainsOf(searcher)
	viaShallowPath := transform.Chain{"s-test", "r-test", "q-test", "q-test"}
	if !containsChain(chains, viaShallowPath) {
		t.Errorf("needles = %v, want FINAL2 reachable via the shallower q-q-r-s rediscovery of TARGET", chains)
	}
}
