package agent

import (
	"sort"

	"saverbot.ai/internal/grid"
)

// LandmarkStatus tags a known bank as still accepting deposits or exhausted.
type LandmarkStatus int

const (
	Free LandmarkStatus = iota
	Filled
)

func (s LandmarkStatus) String() string {
	if s == Filled {
		return "FILLED"
	}
	return "FREE"
}

// LandmarkRecord is the per-bank bookkeeping entry. A coordinate has exactly
// one record, so it can never sit in two statuses at once.
type LandmarkRecord struct {
	Pos       grid.Coordinate
	Status    LandmarkStatus
	Deposited int
}

// SpatialMemory is the agent's growing map of the world: every bank it has
// ever seen plus every observed cell. Both grow monotonically for the
// agent's lifetime; there is no eviction.
type SpatialMemory struct {
	landmarks map[grid.Coordinate]*LandmarkRecord
	seen      map[grid.Coordinate]grid.ContentKind
}

func NewSpatialMemory() *SpatialMemory {
	return &SpatialMemory{
		landmarks: make(map[grid.Coordinate]*LandmarkRecord),
		seen:      make(map[grid.Coordinate]grid.ContentKind),
	}
}

// RecordLandmark inserts pos as a Free bank. Idempotent: a coordinate
// already known (in either status) is left untouched.
func (m *SpatialMemory) RecordLandmark(pos grid.Coordinate) {
	if _, ok := m.landmarks[pos]; ok {
		return
	}
	m.landmarks[pos] = &LandmarkRecord{Pos: pos, Status: Free}
}

// MarkFilled transitions pos from Free to Filled. The transition is
// one-directional; an unknown or already-Filled coordinate is a no-op.
func (m *SpatialMemory) MarkFilled(pos grid.Coordinate) {
	if r, ok := m.landmarks[pos]; ok {
		r.Status = Filled
	}
}

// NearestFree returns the Free bank with minimal Manhattan distance from
// 'from'. Ties go to the first record found in a deterministic row-major
// scan. ok is false when no Free bank is known.
func (m *SpatialMemory) NearestFree(from grid.Coordinate) (grid.Coordinate, bool) {
	best := grid.Coordinate{}
	bestDist := -1
	for _, r := range m.sortedLandmarks() {
		if r.Status != Free {
			continue
		}
		d := grid.Manhattan(from, r.Pos)
		if bestDist < 0 || d < bestDist {
			best = r.Pos
			bestDist = d
		}
	}
	return best, bestDist >= 0
}

// BestEarning returns the bank with the largest cumulative deposit. ok is
// false when nothing has ever been deposited.
func (m *SpatialMemory) BestEarning() (grid.Coordinate, bool) {
	best := grid.Coordinate{}
	bestSum := 0
	for _, r := range m.sortedLandmarks() {
		if r.Deposited > bestSum {
			best = r.Pos
			bestSum = r.Deposited
		}
	}
	return best, bestSum > 0
}

// Credit accumulates an accepted deposit into pos's ledger entry, creating
// the record if the bank was somehow unknown.
func (m *SpatialMemory) Credit(pos grid.Coordinate, accepted int) {
	if accepted <= 0 {
		return
	}
	r, ok := m.landmarks[pos]
	if !ok {
		r = &LandmarkRecord{Pos: pos, Status: Free}
		m.landmarks[pos] = r
	}
	r.Deposited += accepted
}

// Landmark reads one record by coordinate.
func (m *SpatialMemory) Landmark(pos grid.Coordinate) (LandmarkRecord, bool) {
	if r, ok := m.landmarks[pos]; ok {
		return *r, true
	}
	return LandmarkRecord{}, false
}

// Landmarks returns copies of every record in deterministic order.
func (m *SpatialMemory) Landmarks() []LandmarkRecord {
	out := make([]LandmarkRecord, 0, len(m.landmarks))
	for _, r := range m.sortedLandmarks() {
		out = append(out, *r)
	}
	return out
}

// FreeKnown reports whether at least one Free bank is known.
func (m *SpatialMemory) FreeKnown() bool {
	for _, r := range m.landmarks {
		if r.Status == Free {
			return true
		}
	}
	return false
}

// RecordSeen appends an observation. The first content recorded for a
// coordinate wins; re-observation does not rewrite history.
func (m *SpatialMemory) RecordSeen(pos grid.Coordinate, content grid.ContentKind) {
	if _, ok := m.seen[pos]; ok {
		return
	}
	m.seen[pos] = content
}

// HasSeen reports whether pos was ever observed.
func (m *SpatialMemory) HasSeen(pos grid.Coordinate) bool {
	_, ok := m.seen[pos]
	return ok
}

// Seen returns every observation in deterministic row-major order, for
// snapshots.
func (m *SpatialMemory) Seen() []grid.Tile {
	out := make([]grid.Tile, 0, len(m.seen))
	for pos, content := range m.seen {
		out = append(out, grid.Tile{Pos: pos, Content: content})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Row != out[j].Pos.Row {
			return out[i].Pos.Row < out[j].Pos.Row
		}
		return out[i].Pos.Col < out[j].Pos.Col
	})
	return out
}

// SeenCount is the number of distinct observed cells.
func (m *SpatialMemory) SeenCount() int {
	return len(m.seen)
}

// sortedLandmarks iterates records in row-major coordinate order so scans
// are deterministic regardless of map iteration order.
func (m *SpatialMemory) sortedLandmarks() []*LandmarkRecord {
	out := make([]*LandmarkRecord, 0, len(m.landmarks))
	for _, r := range m.landmarks {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Row != out[j].Pos.Row {
			return out[i].Pos.Row < out[j].Pos.Row
		}
		return out[i].Pos.Col < out[j].Pos.Col
	})
	return out
}
