package agent

import "saverbot.ai/internal/tuning"

// CostClass names an energy-threshold tier gating an action attempt.
type CostClass int

const (
	CostTickAdmission CostClass = iota
	CostStep
	CostHarvestLoop
	CostFinishing
)

func (c CostClass) String() string {
	switch c {
	case CostTickAdmission:
		return "TICK_ADMISSION"
	case CostStep:
		return "STEP"
	case CostHarvestLoop:
		return "HARVEST_LOOP"
	}
	return "FINISHING"
}

// EnergyGovernor is the stateless gate between current energy and an
// action's cost class. A false result is a normal signal, not a failure.
type EnergyGovernor struct {
	costs tuning.EnergyCosts
}

func NewEnergyGovernor(costs tuning.EnergyCosts) EnergyGovernor {
	return EnergyGovernor{costs: costs}
}

// CanAct reports whether current energy clears the threshold of class.
func (g EnergyGovernor) CanAct(current int, class CostClass) bool {
	return current >= g.Threshold(class)
}

// Threshold returns the configured energy floor for class. Finishing uses
// the upper bound of its range so the long maneuver is never started on a
// budget that only covers its cheapest variant.
func (g EnergyGovernor) Threshold(class CostClass) int {
	switch class {
	case CostTickAdmission:
		return g.costs.TickAdmission
	case CostStep:
		return g.costs.Step
	case CostHarvestLoop:
		return g.costs.HarvestLoop
	default:
		return g.costs.FinishingMax
	}
}
