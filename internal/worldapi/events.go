package worldapi

// Event is an untyped observability record, one or more per tick.
type Event map[string]interface{}

// Event types emitted by the controller.
const (
	EventTick       = "TICK"
	EventStateEnter = "STATE_ENTER"
	EventHarvest    = "HARVEST"
	EventDeposit    = "DEPOSIT"
	EventBankFull   = "BANK_FULL"
	EventBankFound  = "BANK_FOUND"
	EventTrade      = "TRADE"
	EventProbe      = "PROBE"
	EventBuild      = "BUILD"
	EventLowEnergy  = "LOW_ENERGY"
)
