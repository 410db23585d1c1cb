package agent

import (
	"testing"

	"saverbot.ai/internal/grid"
)

func TestMemory_FreeAndFilledStayDisjoint(t *testing.T) {
	m := NewSpatialMemory()
	a := grid.Coordinate{Row: 1, Col: 1}
	b := grid.Coordinate{Row: 2, Col: 2}

	m.RecordLandmark(a)
	m.RecordLandmark(b)
	m.MarkFilled(a)
	m.RecordLandmark(a) // must not resurrect a as Free

	ra, ok := m.Landmark(a)
	if !ok || ra.Status != Filled {
		t.Fatalf("a: got %v ok=%v want Filled", ra.Status, ok)
	}
	rb, ok := m.Landmark(b)
	if !ok || rb.Status != Free {
		t.Fatalf("b: got %v ok=%v want Free", rb.Status, ok)
	}

	free := 0
	filled := 0
	for _, r := range m.Landmarks() {
		switch r.Status {
		case Free:
			free++
		case Filled:
			filled++
		}
	}
	if free != 1 || filled != 1 {
		t.Fatalf("got free=%d filled=%d want 1/1", free, filled)
	}
}

func TestMemory_MarkFilledIdempotent(t *testing.T) {
	m := NewSpatialMemory()
	a := grid.Coordinate{Row: 3, Col: 4}
	m.RecordLandmark(a)
	m.Credit(a, 7)

	m.MarkFilled(a)
	once, _ := m.Landmark(a)
	m.MarkFilled(a)
	twice, _ := m.Landmark(a)

	if once != twice {
		t.Fatalf("double MarkFilled changed state: %+v vs %+v", once, twice)
	}
	if twice.Deposited != 7 {
		t.Fatalf("ledger lost on fill: got %d want 7", twice.Deposited)
	}
}

func TestMemory_MarkFilledUnknownIsNoop(t *testing.T) {
	m := NewSpatialMemory()
	m.MarkFilled(grid.Coordinate{Row: 9, Col: 9})
	if n := len(m.Landmarks()); n != 0 {
		t.Fatalf("unknown coordinate created a record: %d", n)
	}
}

func TestMemory_NearestFree(t *testing.T) {
	m := NewSpatialMemory()
	from := grid.Coordinate{Row: 0, Col: 0}

	if _, ok := m.NearestFree(from); ok {
		t.Fatalf("empty memory reported a free bank")
	}

	far := grid.Coordinate{Row: 10, Col: 10}
	near := grid.Coordinate{Row: 1, Col: 2}
	m.RecordLandmark(far)
	m.RecordLandmark(near)

	got, ok := m.NearestFree(from)
	if !ok || got != near {
		t.Fatalf("nearest: got %v ok=%v want %v", got, ok, near)
	}

	m.MarkFilled(near)
	got, ok = m.NearestFree(from)
	if !ok || got != far {
		t.Fatalf("nearest after fill: got %v ok=%v want %v", got, ok, far)
	}
}

func TestMemory_NearestFreeTieBreaksByScanOrder(t *testing.T) {
	m := NewSpatialMemory()
	from := grid.Coordinate{Row: 0, Col: 0}
	// Both at distance 4; row-major scan order decides.
	m.RecordLandmark(grid.Coordinate{Row: 3, Col: 1})
	m.RecordLandmark(grid.Coordinate{Row: 1, Col: 3})

	got, ok := m.NearestFree(from)
	want := grid.Coordinate{Row: 1, Col: 3}
	if !ok || got != want {
		t.Fatalf("tie: got %v ok=%v want %v", got, ok, want)
	}
}

func TestMemory_BestEarning(t *testing.T) {
	m := NewSpatialMemory()
	a := grid.Coordinate{Row: 1, Col: 1}
	b := grid.Coordinate{Row: 2, Col: 2}

	if _, ok := m.BestEarning(); ok {
		t.Fatalf("no deposits yet, but BestEarning reported one")
	}

	m.RecordLandmark(a)
	m.RecordLandmark(b)
	m.Credit(a, 5)
	m.Credit(b, 9)
	m.Credit(a, 3)

	got, ok := m.BestEarning()
	if !ok || got != b {
		t.Fatalf("best earning: got %v ok=%v want %v", got, ok, b)
	}
}

func TestMemory_SeenSet(t *testing.T) {
	m := NewSpatialMemory()
	p := grid.Coordinate{Row: 5, Col: 5}

	if m.HasSeen(p) {
		t.Fatalf("unseen coordinate reported seen")
	}
	m.RecordSeen(p, grid.Coin)
	m.RecordSeen(p, grid.Rock) // re-observation keeps the first record
	if !m.HasSeen(p) {
		t.Fatalf("seen coordinate reported unseen")
	}
	if got := m.SeenCount(); got != 1 {
		t.Fatalf("seen count: got %d want 1", got)
	}
	if got := m.Seen()[0].Content; got != grid.Coin {
		t.Fatalf("seen content: got %s want COIN", got)
	}
}
