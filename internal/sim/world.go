// Package sim is an in-process host embodiment: a deterministic grid world
// with banks, scattered resources and an energy pool, implementing the
// worldapi boundary the controller acts through. It stands in for the real
// engine in cmd/bot and in integration tests.
package sim

import (
	"fmt"

	"saverbot.ai/internal/grid"
)

type Config struct {
	Rows int
	Cols int
	Seed int64

	// Sensor window radius; 1 gives the classic 3x3 vicinity.
	ObsRadius int

	StartEnergy     int
	MaxEnergy       int
	RechargePerTick int

	StepCost    int
	DestroyCost int
	PutCost     int
	BuildCost   int

	// BankCapacity is the per-bank deposit capacity at generation time.
	BankCapacity int
}

func DefaultConfig(seed int64) Config {
	return Config{
		Rows:            64,
		Cols:            64,
		Seed:            seed,
		ObsRadius:       1,
		StartEnergy:     1000,
		MaxEnergy:       1000,
		RechargePerTick: 120,
		StepCost:        5,
		DestroyCost:     10,
		PutCost:         10,
		BuildCost:       400,
		BankCapacity:    30,
	}
}

// World owns the grid, the agent's body (position, energy, inventory) and
// the bank capacities. Single-threaded, driven by the owning loop.
type World struct {
	cfg   Config
	cells map[grid.Coordinate]grid.ContentKind
	banks map[grid.Coordinate]int // remaining capacity

	pos       grid.Coordinate
	energy    int
	inventory grid.Inventory

	nextProject int
}

func New(cfg Config) (*World, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("sim: world must have positive dimensions")
	}
	if cfg.ObsRadius <= 0 {
		cfg.ObsRadius = 1
	}
	w := &World{
		cfg:       cfg,
		cells:     make(map[grid.Coordinate]grid.ContentKind),
		banks:     make(map[grid.Coordinate]int),
		energy:    cfg.StartEnergy,
		inventory: make(grid.Inventory),
	}
	w.generate()
	return w, nil
}

// NewBarren builds a world with no generated content at all. Scenario tests
// place exactly the cells they need with SetContent.
func NewBarren(cfg Config) (*World, error) {
	w, err := New(cfg)
	if err != nil {
		return nil, err
	}
	w.cells = make(map[grid.Coordinate]grid.ContentKind)
	w.banks = make(map[grid.Coordinate]int)
	return w, nil
}
