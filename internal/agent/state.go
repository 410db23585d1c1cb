package agent

import "saverbot.ai/internal/grid"

// State is the controller's behavior mode. Exactly one is active; only the
// controller's transition logic mutates it.
type State int

const (
	CoinCollecting State = iota
	RockCollecting
	Trading
	Saving
	BankSearching
	Finishing
	Enjoying // terminal
)

func (s State) String() string {
	switch s {
	case CoinCollecting:
		return "COIN_COLLECTING"
	case RockCollecting:
		return "ROCK_COLLECTING"
	case Trading:
		return "TRADING"
	case Saving:
		return "SAVING"
	case BankSearching:
		return "BANK_SEARCHING"
	case Finishing:
		return "FINISHING"
	case Enjoying:
		return "ENJOYING"
	}
	return "?"
}

// wantedFor lists the content kinds worth harvesting while in state s.
var wantedFor = map[State][]grid.ContentKind{
	CoinCollecting: {grid.Coin, grid.Garbage, grid.Rock, grid.Tree, grid.Fish},
	RockCollecting: {grid.Rock},
	Trading:        {grid.Coin},
	Saving:         {grid.Coin},
	BankSearching:  {grid.Coin},
	Finishing:      {grid.Rock},
}
