package agent

import "saverbot.ai/internal/grid"

// moveTo walks the agent toward target with a two-phase Manhattan walk:
// rows first, then columns. It is not obstacle-aware; a blocked step ends
// the walk and the caller re-evaluates next tick. Every step is gated on
// the movement cost class before it is attempted. Returns true only when
// the agent ends exactly on target.
func (c *Controller) moveTo(target grid.Coordinate) bool {
	pos := c.position()
	for pos.Row != target.Row {
		var dir grid.Direction
		if pos.Row < target.Row {
			dir = grid.Down
		} else {
			dir = grid.Up
		}
		next, ok := c.step(dir)
		if !ok {
			return false
		}
		pos = next
	}
	for pos.Col != target.Col {
		var dir grid.Direction
		if pos.Col < target.Col {
			dir = grid.Right
		} else {
			dir = grid.Left
		}
		next, ok := c.step(dir)
		if !ok {
			return false
		}
		pos = next
	}
	return true
}

// moveAdjacent walks toward target but stops on a cardinal neighbor instead
// of the cell itself, so the cell stays in Destroy range. Returns true when
// the agent ends at Manhattan distance 1 from target.
func (c *Controller) moveAdjacent(target grid.Coordinate) bool {
	pos := c.position()
	if pos == target {
		// Standing on the cell itself; vacate so it can be aimed at.
		for _, dir := range []grid.Direction{grid.Up, grid.Down, grid.Left, grid.Right} {
			if next, ok := c.step(dir); ok {
				pos = next
				break
			}
		}
	}
	for grid.Manhattan(pos, target) > 1 {
		var dir grid.Direction
		switch {
		case pos.Row < target.Row:
			dir = grid.Down
		case pos.Row > target.Row:
			dir = grid.Up
		case pos.Col < target.Col:
			dir = grid.Right
		default:
			dir = grid.Left
		}
		next, ok := c.step(dir)
		if !ok {
			return false
		}
		pos = next
	}
	return grid.Manhattan(pos, target) == 1
}

// step performs one energy-gated move. ok is false when energy is below the
// step class or the host refused the move.
func (c *Controller) step(dir grid.Direction) (grid.Coordinate, bool) {
	if !c.governor.CanAct(c.world.Energy(), CostStep) {
		return c.position(), false
	}
	next, err := c.world.Step(dir)
	if err != nil {
		c.logger.Printf("step %s: %v", dir, err)
		return c.position(), false
	}
	return next, true
}

// position re-senses the agent's own coordinate. Sensing is free.
func (c *Controller) position() grid.Coordinate {
	_, pos := c.world.ObserveVicinity()
	return pos
}
