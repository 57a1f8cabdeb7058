package fingerprint

import "testing"

func TestOfIsStableAndDistinguishing(t *testing.T) {
	a := Of([]byte("hello"))
	b := Of([]byte("hello"))
	c := Of([]byte("world"))

	if a != b {
		t.Fatalf("Of() not stable across calls: %d != %d", a, b)
	}
	if a == c {
		t.Fatalf("Of(%q) == Of(%q) = %d, want distinct fingerprints", "hello", "world", a)
	}
}

func TestLayerSeenAdmit(t *testing.T) {
	s := make(LayerSeen)

	if !s.Admit(1, 3) {
		t.Fatal("first visit to a fingerprint must be admitted")
	}
	if s.Admit(1, 3) {
		t.Fatal("revisit at the same layer must not be admitted")
	}
	if s.Admit(1, 2) {
		t.Fatal("revisit at a lower layer must not be admitted")
	}
	if !s.Admit(1, 5) {
		t.Fatal("revisit at a higher layer must be admitted")
	}
	if s.Admit(1, 4) {
		t.Fatal("revisit at a layer below the new high-water mark must not be admitted")
	}
}
