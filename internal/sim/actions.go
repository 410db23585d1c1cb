package sim

import (
	"fmt"

	"saverbot.ai/internal/grid"
	"saverbot.ai/internal/worldapi"
)

// conversion rates: coins gained per unit converted.
var convertRate = map[grid.ContentKind]int{
	grid.Garbage: 1,
	grid.Rock:    2,
	grid.Tree:    1,
	grid.Fish:    1,
}

func (w *World) ObserveVicinity() (worldapi.Window, grid.Coordinate) {
	win := worldapi.Window{Center: w.pos, Radius: w.cfg.ObsRadius}
	for dr := -w.cfg.ObsRadius; dr <= w.cfg.ObsRadius; dr++ {
		for dc := -w.cfg.ObsRadius; dc <= w.cfg.ObsRadius; dc++ {
			pos := grid.Coordinate{Row: w.pos.Row + dr, Col: w.pos.Col + dc}
			if !w.inBounds(pos) {
				continue
			}
			win.Tiles = append(win.Tiles, grid.Tile{Pos: pos, Content: w.cells[pos]})
		}
	}
	return win, w.pos
}

func (w *World) Step(dir grid.Direction) (grid.Coordinate, error) {
	if w.energy < w.cfg.StepCost {
		return w.pos, worldapi.ErrInsufficientEnergy
	}
	next := dir.Offset(w.pos)
	if !w.inBounds(next) || w.cells[next] == grid.Bank {
		return w.pos, worldapi.ErrBlocked
	}
	w.energy -= w.cfg.StepCost
	w.pos = next
	return w.pos, nil
}

func (w *World) Destroy(dir grid.Direction) (int, error) {
	if w.energy < w.cfg.DestroyCost {
		return 0, worldapi.ErrInsufficientEnergy
	}
	target := dir.Offset(w.pos)
	if !w.inBounds(target) {
		return 0, worldapi.ErrBlocked
	}
	kind := w.cells[target]
	if kind == grid.Bank {
		return 0, worldapi.ErrBlocked
	}
	if !kind.Collectible() {
		return 0, worldapi.ErrExhausted
	}
	w.energy -= w.cfg.DestroyCost
	delete(w.cells, target)
	w.inventory.Add(kind, 1)
	return 1, nil
}

func (w *World) Put(kind grid.ContentKind, quantity int, dir grid.Direction) (int, error) {
	if quantity <= 0 || w.inventory.Count(kind) == 0 {
		return 0, worldapi.ErrInventoryEmpty
	}
	if w.energy < w.cfg.PutCost {
		return 0, worldapi.ErrInsufficientEnergy
	}
	target := dir.Offset(w.pos)
	if w.cells[target] != grid.Bank {
		return 0, worldapi.ErrBlocked
	}
	w.energy -= w.cfg.PutCost
	capacity := w.banks[target]
	accepted := quantity
	if held := w.inventory.Count(kind); accepted > held {
		accepted = held
	}
	if accepted > capacity {
		accepted = capacity
	}
	// accepted may be zero: the bank is exhausted, not an error.
	w.banks[target] = capacity - accepted
	w.inventory.Remove(kind, accepted)
	return accepted, nil
}

func (w *World) Search(kinds []grid.ContentKind, depth int, q grid.Quadrant) ([]worldapi.Found, error) {
	if depth <= 0 {
		return nil, worldapi.ErrSearchFailed
	}
	rowLo, rowHi, colLo, colHi := quadrantBounds(w.pos, q, depth)
	var out []worldapi.Found
	for r := rowLo; r <= rowHi; r++ {
		for c := colLo; c <= colHi; c++ {
			pos := grid.Coordinate{Row: r, Col: c}
			if !w.inBounds(pos) {
				continue
			}
			kind := w.cells[pos]
			if kind == grid.None {
				continue
			}
			for _, want := range kinds {
				if kind == want {
					out = append(out, worldapi.Found{Kind: kind, Pos: pos})
					break
				}
			}
		}
	}
	return out, nil
}

func quadrantBounds(pos grid.Coordinate, q grid.Quadrant, depth int) (rowLo, rowHi, colLo, colHi int) {
	switch q {
	case grid.TopLeft:
		return pos.Row - depth, pos.Row, pos.Col - depth, pos.Col
	case grid.TopRight:
		return pos.Row - depth, pos.Row, pos.Col, pos.Col + depth
	case grid.BottomLeft:
		return pos.Row, pos.Row + depth, pos.Col - depth, pos.Col
	default:
		return pos.Row, pos.Row + depth, pos.Col, pos.Col + depth
	}
}

func (w *World) Convert(kind grid.ContentKind) (int, error) {
	rate, ok := convertRate[kind]
	if !ok {
		return 0, worldapi.ErrConversionFailed
	}
	held := w.inventory.Count(kind)
	if held == 0 {
		return 0, worldapi.ErrInventoryEmpty
	}
	w.inventory.Remove(kind, held)
	coins := held * rate
	w.inventory.Add(grid.Coin, coins)
	return coins, nil
}

func (w *World) DesignProject(shape worldapi.Shape, anchor grid.Coordinate) (worldapi.Project, error) {
	if shape != worldapi.ShapeRing {
		return worldapi.Project{}, worldapi.ErrBuildFailed
	}
	w.nextProject++
	p := worldapi.Project{
		ID:     fmt.Sprintf("P%d", w.nextProject),
		Shape:  shape,
		Anchor: anchor,
	}
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			pos := grid.Coordinate{Row: anchor.Row + dr, Col: anchor.Col + dc}
			if w.inBounds(pos) && w.cells[pos] == grid.None {
				p.Cells = append(p.Cells, pos)
			}
		}
	}
	return p, nil
}

func (w *World) Apply(p worldapi.Project) error {
	if w.energy < w.cfg.BuildCost {
		return worldapi.ErrInsufficientEnergy
	}
	if w.inventory.Count(grid.Rock) < len(p.Cells) {
		return worldapi.ErrBuildFailed
	}
	w.energy -= w.cfg.BuildCost
	w.inventory.Remove(grid.Rock, len(p.Cells))
	for _, pos := range p.Cells {
		// The agent must not be walled in.
		if pos == w.pos {
			continue
		}
		w.cells[pos] = grid.Rock
	}
	return nil
}

func (w *World) Energy() int { return w.energy }

func (w *World) InventoryCount(kind grid.ContentKind) int {
	return w.inventory.Count(kind)
}

// Recharge restores energy at the end of a tick, clamped at the maximum.
func (w *World) Recharge() {
	w.energy += w.cfg.RechargePerTick
	if w.energy > w.cfg.MaxEnergy {
		w.energy = w.cfg.MaxEnergy
	}
}

func (w *World) inBounds(pos grid.Coordinate) bool {
	return pos.Row >= 0 && pos.Row < w.cfg.Rows && pos.Col >= 0 && pos.Col < w.cfg.Cols
}

// Test and runner accessors.

func (w *World) Pos() grid.Coordinate { return w.pos }

func (w *World) ContentAt(pos grid.Coordinate) grid.ContentKind { return w.cells[pos] }

// SetContent rewrites one cell; placing a bank also sets its capacity.
func (w *World) SetContent(pos grid.Coordinate, kind grid.ContentKind, bankCapacity int) {
	if kind == grid.None {
		delete(w.cells, pos)
		delete(w.banks, pos)
		return
	}
	w.cells[pos] = kind
	if kind == grid.Bank {
		w.banks[pos] = bankCapacity
	}
}

// SetInventory overwrites one held count.
func (w *World) SetInventory(kind grid.ContentKind, n int) {
	w.inventory[kind] = n
}

// SetEnergy overwrites the energy pool.
func (w *World) SetEnergy(n int) { w.energy = n }

// BankCapacityAt reads a bank's remaining capacity.
func (w *World) BankCapacityAt(pos grid.Coordinate) int { return w.banks[pos] }
