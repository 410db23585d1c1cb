package agent

import (
	"saverbot.ai/internal/grid"
	"saverbot.ai/internal/worldapi"
)

// mergePerception folds a sensed window into spatial memory: banks become
// landmark records, every observed cell lands in the seen set. Pure
// bookkeeping with no movement or energy cost, so it runs every tick
// regardless of the energy gate.
func (c *Controller) mergePerception(win worldapi.Window) {
	for _, t := range win.Tiles {
		if t.Content == grid.Bank {
			c.memory.RecordLandmark(t.Pos)
		}
		c.memory.RecordSeen(t.Pos, t.Content)
	}
}
