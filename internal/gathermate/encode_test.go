package gathermate

import (
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want int64
	}{
		{"origin", 0, 0, 0},
		{"tenth", 0.1, 0.1, 1_000_100_000},
		{"half and quarter", 0.5, 0.25, 5_000_250_000},
		{"max", 0.9999, 0.9999, 9_999_999_900},
		{"x clamped", 1.0, 0.25, 9_999_250_000},
		{"y clamped", 0.5, 1.2, 5_000_999_900},
		{"negative clamped", -0.1, 0.5, 500_000},
		{"rounds to nearest", 0.12346, 0.00004, 1_235_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.x, tt.y); got != tt.want {
				t.Errorf("Encode(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestEncode_ClampMatchesMax(t *testing.T) {
	for _, v := range []float64{0.99995, 1, 1.5, 100} {
		if Encode(v, 0.3) != Encode(MaxCoord, 0.3) {
			t.Errorf("Encode(%v, 0.3) != Encode(MaxCoord, 0.3)", v)
		}
		if Encode(0.3, v) != Encode(0.3, MaxCoord) {
			t.Errorf("Encode(0.3, %v) != Encode(0.3, MaxCoord)", v)
		}
	}
}

func TestEncode_Monotonic(t *testing.T) {
	prevX, prevY := Encode(0, 0.42), Encode(0.42, 0)
	for i := 1; i <= 9999; i += 7 {
		v := float64(i) / 10000
		x, y := Encode(v, 0.42), Encode(0.42, v)
		if x < prevX {
			t.Fatalf("Encode not monotonic in x at %v", v)
		}
		if y < prevY {
			t.Fatalf("Encode not monotonic in y at %v", v)
		}
		prevX, prevY = x, y
	}
}

func TestEncode_InjectiveOnGrid(t *testing.T) {
	seen := make(map[int64][2]int)
	for xi := 0; xi <= 9999; xi += 101 {
		for yi := 0; yi <= 9999; yi += 97 {
			loc := Encode(float64(xi)/10000, float64(yi)/10000)
			if loc < 0 {
				t.Fatalf("Encode returned negative key %d", loc)
			}
			if prev, dup := seen[loc]; dup {
				t.Fatalf("grid points %v and %v both encode to %d", prev, [2]int{xi, yi}, loc)
			}
			seen[loc] = [2]int{xi, yi}
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		loc  int64
		x, y float64
	}{
		{0, 0, 0},
		{1_000_100_000, 0.1, 0.1},
		{5_000_250_000, 0.5, 0.25},
		{9_999_999_900, 0.9999, 0.9999},
	}

	for _, tt := range tests {
		x, y := Decode(tt.loc)
		if x != tt.x || y != tt.y {
			t.Errorf("Decode(%d) = (%v, %v), want (%v, %v)", tt.loc, x, y, tt.x, tt.y)
		}
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	for _, xy := range [][2]float64{{0.1234, 0.5678}, {0.0001, 0.9999}, {0.3333, 0.6667}} {
		x, y := Decode(Encode(xy[0], xy[1]))
		if Encode(x, y) != Encode(xy[0], xy[1]) {
			t.Errorf("Encode(Decode(Encode(%v))) changed the key", xy)
		}
	}
}
