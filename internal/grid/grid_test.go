package grid

import "testing"

func TestDistances(t *testing.T) {
	a := Coordinate{Row: 2, Col: 3}
	b := Coordinate{Row: 5, Col: 1}
	if got := Manhattan(a, b); got != 5 {
		t.Fatalf("manhattan: got %d want 5", got)
	}
	if got := Chebyshev(a, b); got != 3 {
		t.Fatalf("chebyshev: got %d want 3", got)
	}
	if got := Manhattan(a, a); got != 0 {
		t.Fatalf("manhattan self: got %d want 0", got)
	}
}

func TestDirectionOffsetRoundTrip(t *testing.T) {
	c := Coordinate{Row: 4, Col: 4}
	cases := []struct {
		dir  Direction
		want Coordinate
	}{
		{Up, Coordinate{3, 4}},
		{Down, Coordinate{5, 4}},
		{Left, Coordinate{4, 3}},
		{Right, Coordinate{4, 5}},
	}
	for _, tc := range cases {
		if got := tc.dir.Offset(c); got != tc.want {
			t.Fatalf("%s offset: got %v want %v", tc.dir, got, tc.want)
		}
	}
}

func TestToward(t *testing.T) {
	cases := []struct {
		dr, dc int
		want   Direction
	}{
		{-1, 0, Up},
		{1, 0, Down},
		{0, -1, Left},
		{0, 1, Right},
		{-1, 1, Up}, // vertical wins on diagonals
	}
	for _, tc := range cases {
		if got := Toward(tc.dr, tc.dc); got != tc.want {
			t.Fatalf("toward(%d,%d): got %s want %s", tc.dr, tc.dc, got, tc.want)
		}
	}
}

func TestQuadrantProbePoints(t *testing.T) {
	c := Coordinate{Row: 10, Col: 10}
	want := map[Quadrant]Coordinate{
		TopLeft:     {8, 8},
		TopRight:    {8, 12},
		BottomLeft:  {12, 8},
		BottomRight: {12, 12},
	}
	for q, w := range want {
		if got := q.ProbePoint(c, 2); got != w {
			t.Fatalf("%s probe point: got %v want %v", q, got, w)
		}
	}
}

func TestInventoryNeverNegative(t *testing.T) {
	inv := make(Inventory)
	inv.Add(Coin, 3)
	if got := inv.Remove(Coin, 5); got != 3 {
		t.Fatalf("remove: got %d want 3", got)
	}
	if got := inv.Count(Coin); got != 0 {
		t.Fatalf("count after over-remove: got %d want 0", got)
	}
	inv.Add(Coin, -2)
	if got := inv.Count(Coin); got != 0 {
		t.Fatalf("negative add must be ignored: got %d", got)
	}
}
