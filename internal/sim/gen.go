package sim

import (
	"hash/fnv"

	"saverbot.ai/internal/grid"
)

// generate sprinkles content over the grid from the seed alone, so two
// worlds with the same config are identical. Bank cells get a capacity
// entry; the spawn cell and its neighbors stay clear so the agent never
// starts trapped.
func (w *World) generate() {
	spawn := grid.Coordinate{Row: w.cfg.Rows / 2, Col: w.cfg.Cols / 2}
	for r := 0; r < w.cfg.Rows; r++ {
		for c := 0; c < w.cfg.Cols; c++ {
			pos := grid.Coordinate{Row: r, Col: c}
			if grid.Chebyshev(pos, spawn) <= 1 {
				continue
			}
			kind := contentAt(w.cfg.Seed, r, c)
			if kind == grid.None {
				continue
			}
			w.cells[pos] = kind
			if kind == grid.Bank {
				w.banks[pos] = w.cfg.BankCapacity
			}
		}
	}
	w.pos = spawn
}

// contentAt hashes (seed, row, col) into a sparse content distribution:
// mostly empty, some coins and garbage, fewer rocks and trees, rare fish
// and rarer banks.
func contentAt(seed int64, row, col int) grid.ContentKind {
	h := hash2(seed, row, col)
	switch {
	case h%97 == 0:
		return grid.Bank
	case h%29 == 0:
		return grid.Coin
	case h%23 == 0:
		return grid.Garbage
	case h%19 == 0:
		return grid.Rock
	case h%17 == 0:
		return grid.Tree
	case h%41 == 0:
		return grid.Fish
	}
	return grid.None
}

func hash2(seed int64, x, y int) uint64 {
	h := fnv.New64a()
	var buf [24]byte
	put64 := func(off int, v uint64) {
		for i := 0; i < 8; i++ {
			buf[off+i] = byte(v >> (8 * i))
		}
	}
	put64(0, uint64(seed))
	put64(8, uint64(int64(x)))
	put64(16, uint64(int64(y)))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}
