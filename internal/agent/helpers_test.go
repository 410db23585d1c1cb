package agent

import (
	"io"
	"log"
	"testing"

	"saverbot.ai/internal/sim"
	"saverbot.ai/internal/tuning"
	"saverbot.ai/internal/worldapi"
)

// newTestWorld builds an empty 16x16 world; the agent spawns at (8,8).
func newTestWorld(t *testing.T) *sim.World {
	t.Helper()
	w, err := sim.NewBarren(sim.Config{
		Rows:            16,
		Cols:            16,
		Seed:            1,
		ObsRadius:       1,
		StartEnergy:     1000,
		MaxEnergy:       1000,
		RechargePerTick: 120,
		StepCost:        5,
		DestroyCost:     10,
		PutCost:         10,
		BuildCost:       400,
		BankCapacity:    30,
	})
	if err != nil {
		t.Fatalf("barren world: %v", err)
	}
	return w
}

func newTestController(t *testing.T, w worldapi.World, goal int) *Controller {
	t.Helper()
	ctrl, err := New(Config{
		Goal:   goal,
		Tuning: tuning.Default(),
		Seed:   42,
		World:  w,
		Sink:   worldapi.NopSink,
		Log:    log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return ctrl
}
