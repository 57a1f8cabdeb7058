package conv

import "testing"

func TestIntToUint16(t *testing.T) {
	cases := []struct {
		name string
		n    int
		want uint16
	}{
		{"zero", 0, 0},
		{"mid", 1234, 1234},
		{"max", 65535, 65535},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IntToUint16(c.n); got != c.want {
				t.Fatalf("IntToUint16(%d) = %d, want %d", c.n, got, c.want)
			}
		})
	}
}

func TestIntToUint16PanicsOnOverflow(t *testing.T) {
	cases := []struct {
		name string
		n    int
	}{
		{"negative", -1},
		{"tooLarge", 65536},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("IntToUint16(%d) did not panic", c.n)
				}
			}()
			IntToUint16(c.n)
		})
	}
}
