package agent

import (
	"container/heap"

	"saverbot.ai/internal/grid"
	"saverbot.ai/internal/worldapi"
)

// probe runs one long-range search cycle: harvest the vicinity, pick an
// unexplored quadrant, ask the host for matching cells in it, then either
// remember found banks or greedily visit the nearest finds while the energy
// budget holds. A few random steps afterwards diversify what next tick's
// sensors will see.
func (c *Controller) probe(wanted []grid.ContentKind) {
	c.harvestVicinity(wanted)

	pos := c.position()
	q := c.pickQuadrant(pos)
	c.emit(worldapi.Event{"type": worldapi.EventProbe, "quadrant": q.String()})

	found, err := c.world.Search(wanted, c.cfg.Tuning.SearchDepth, q)
	if err != nil {
		c.logger.Printf("search %s: %v", q, err)
	}

	if wantedKind(wanted, grid.Bank) {
		for _, f := range found {
			if f.Kind != grid.Bank {
				continue
			}
			c.memory.RecordLandmark(f.Pos)
			c.emit(worldapi.Event{"type": worldapi.EventBankFound, "row": f.Pos.Row, "col": f.Pos.Col})
		}
	} else {
		c.visitFinds(pos, found)
	}

	c.wander()
}

// pickQuadrant prefers a quadrant whose probe point has not been seen yet.
// When every probe point is already in the seen set, all four become
// eligible again and the choice is random.
func (c *Controller) pickQuadrant(pos grid.Coordinate) grid.Quadrant {
	var fresh []grid.Quadrant
	for _, q := range grid.Quadrants {
		if !c.memory.HasSeen(q.ProbePoint(pos, c.cfg.Tuning.ProbeRadius)) {
			fresh = append(fresh, q)
		}
	}
	if len(fresh) == 0 {
		fresh = grid.Quadrants[:]
	}
	return fresh[c.rng.IntN(len(fresh))]
}

// visitFinds walks to finds nearest-first until the queue drains or energy
// drops below the harvest-loop class. The walk stops on a cardinal neighbor
// of the find, never on the find itself: Destroy only reaches adjacent
// cells, so ending on top of the resource would leave it uncollectable.
func (c *Controller) visitFinds(pos grid.Coordinate, found []worldapi.Found) {
	pq := &findQueue{origin: pos}
	heap.Init(pq)
	for _, f := range found {
		heap.Push(pq, f)
	}
	for pq.Len() > 0 {
		if !c.governor.CanAct(c.world.Energy(), CostHarvestLoop) {
			return
		}
		f := heap.Pop(pq).(worldapi.Found)
		if c.moveAdjacent(f.Pos) {
			c.harvestVicinity([]grid.ContentKind{f.Kind})
		}
	}
}

// wander takes a few random single steps so consecutive probes do not sense
// the same window. Step failures are fine here.
func (c *Controller) wander() {
	dirs := [4]grid.Direction{grid.Up, grid.Down, grid.Left, grid.Right}
	for i := 0; i < c.cfg.Tuning.WanderSteps; i++ {
		if !c.governor.CanAct(c.world.Energy(), CostStep) {
			return
		}
		if _, err := c.world.Step(dirs[c.rng.IntN(4)]); err != nil {
			return
		}
	}
}

// findQueue orders search hits nearest-first by Manhattan distance from the
// origin the probe started at.
type findQueue struct {
	origin grid.Coordinate
	items  []worldapi.Found
}

func (q *findQueue) Len() int { return len(q.items) }

func (q *findQueue) Less(i, j int) bool {
	return grid.Manhattan(q.origin, q.items[i].Pos) < grid.Manhattan(q.origin, q.items[j].Pos)
}

func (q *findQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *findQueue) Push(x any) { q.items = append(q.items, x.(worldapi.Found)) }

func (q *findQueue) Pop() any {
	old := q.items
	n := len(old)
	x := old[n-1]
	q.items = old[:n-1]
	return x
}
