package agent

import (
	"saverbot.ai/internal/grid"
	"saverbot.ai/internal/worldapi"
)

// harvestVicinity opportunistically collects wanted kinds around the agent.
//
// Safety comes first: if any known bank (Free or Filled) sits within
// Chebyshev distance 1 of the agent, that is, on any of the eight
// neighbors, the indiscriminate sweep could damage it, so harvesting falls
// back to a conservative per-tile pass over the sensed window that skips
// bank cells. All eight neighbors are protected.
func (c *Controller) harvestVicinity(wanted []grid.ContentKind) {
	if !c.governor.CanAct(c.world.Energy(), CostHarvestLoop) {
		return
	}
	win, pos := c.world.ObserveVicinity()

	if c.bankAdjacent(pos) {
		c.harvestCarefully(win, pos, wanted)
		return
	}

	for _, kind := range wanted {
		for _, dir := range []grid.Direction{grid.Up, grid.Down, grid.Left, grid.Right} {
			content, ok := win.At(dir.Offset(pos))
			if !ok || content != kind {
				continue
			}
			n, err := c.world.Destroy(dir)
			if err != nil {
				c.logger.Printf("destroy %s %s: %v", kind, dir, err)
				continue
			}
			if n > 0 {
				c.emit(worldapi.Event{"type": worldapi.EventHarvest, "kind": kind.String(), "count": n})
			}
		}
	}
}

// bankAdjacent reports whether any known landmark is one of the agent's
// eight neighbors. The agent's own cell does not count.
func (c *Controller) bankAdjacent(pos grid.Coordinate) bool {
	for _, r := range c.memory.Landmarks() {
		if r.Pos == pos {
			continue
		}
		if grid.Chebyshev(pos, r.Pos) <= 1 {
			return true
		}
	}
	return false
}

// harvestCarefully destroys only cardinal-adjacent tiles whose content is
// wanted and is not a bank, aiming each destroy at the direction from the
// agent toward the tile.
func (c *Controller) harvestCarefully(win worldapi.Window, pos grid.Coordinate, wanted []grid.ContentKind) {
	for _, t := range win.Tiles {
		dr := t.Pos.Row - pos.Row
		dc := t.Pos.Col - pos.Col
		if dr == 0 && dc == 0 {
			continue
		}
		// Destroy reaches cardinal neighbors only.
		if grid.Manhattan(pos, t.Pos) != 1 {
			continue
		}
		if t.Content == grid.Bank || !wantedKind(wanted, t.Content) {
			continue
		}
		dir := grid.Toward(dr, dc)
		n, err := c.world.Destroy(dir)
		if err != nil {
			c.logger.Printf("careful destroy %s %s: %v", t.Content, dir, err)
			continue
		}
		if n > 0 {
			c.emit(worldapi.Event{"type": worldapi.EventHarvest, "kind": t.Content.String(), "count": n, "careful": true})
		}
	}
}

func wantedKind(wanted []grid.ContentKind, k grid.ContentKind) bool {
	for _, w := range wanted {
		if w == k {
			return true
		}
	}
	return false
}
