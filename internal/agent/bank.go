package agent

import (
	"saverbot.ai/internal/grid"
	"saverbot.ai/internal/worldapi"
)

// depositOutcome is what one deposit attempt produced.
type depositOutcome int

const (
	depositNone     depositOutcome = iota // nothing happened, retry later
	depositAccepted                       // some coins were taken
	depositNoBank                         // no free bank is known
)

// depositCoins resolves the nearest free bank, walks there and puts the
// whole held coin stack into it. An accepted quantity of zero means the
// bank is exhausted and its record flips to Filled; a Put error is logged
// and counts as zero accepted. Accepted coins are credited to the run total
// and to the bank's ledger entry.
func (c *Controller) depositCoins() depositOutcome {
	target, ok := c.memory.NearestFree(c.position())
	if !ok {
		return depositNoBank
	}
	reached := c.moveTo(target)
	pos := c.position()

	dir, ok := c.depositDirection(pos, target, reached)
	if !ok {
		return depositNone
	}

	held := c.world.InventoryCount(grid.Coin)
	if held == 0 {
		return depositNone
	}
	accepted, err := c.world.Put(grid.Coin, held, dir)
	if err != nil {
		// A failed call is zero accepted for ledger purposes, but it does
		// not retire the bank: only a genuine accepted=0 means exhausted.
		c.logger.Printf("deposit at (%d,%d): %v", target.Row, target.Col, err)
		return depositNone
	}
	if accepted == 0 {
		c.memory.MarkFilled(target)
		c.emit(worldapi.Event{"type": worldapi.EventBankFull, "row": target.Row, "col": target.Col})
		return depositNone
	}
	c.saved += accepted
	c.memory.Credit(target, accepted)
	c.emit(worldapi.Event{"type": worldapi.EventDeposit, "row": target.Row, "col": target.Col, "accepted": accepted, "saved": c.saved})
	return depositAccepted
}

// depositDirection finds a direction whose adjacent cell is a bank. The
// geometric answer works when the walk stopped one cell short of the
// target; if the agent ended coincident with the target (walkable bank) or
// somewhere unexpected, a small set of adjacent directions is tried against
// the sensed window until one points at a bank.
func (c *Controller) depositDirection(pos, target grid.Coordinate, reached bool) (grid.Direction, bool) {
	if !reached && grid.Manhattan(pos, target) == 1 {
		return grid.Toward(target.Row-pos.Row, target.Col-pos.Col), true
	}
	win, self := c.world.ObserveVicinity()
	dirs := [4]grid.Direction{grid.Up, grid.Down, grid.Left, grid.Right}
	tries := c.cfg.Tuning.DepositAttempts
	if tries > len(dirs) {
		tries = len(dirs)
	}
	for _, dir := range dirs[:tries] {
		if content, ok := win.At(dir.Offset(self)); ok && content == grid.Bank {
			return dir, true
		}
	}
	return grid.Up, false
}
