package worldapi

import "errors"

// Error taxonomy for host actions. None of these is fatal to a tick: the
// issuing component logs the failure and treats it as "no progress this
// attempt".
var (
	// Movement.
	ErrBlocked            = errors.New("movement blocked")
	ErrInsufficientEnergy = errors.New("insufficient energy")

	// Inventory / interaction.
	ErrInventoryEmpty   = errors.New("inventory empty")
	ErrExhausted        = errors.New("target exhausted")
	ErrConversionFailed = errors.New("conversion failed")

	// Search / construction.
	ErrSearchFailed = errors.New("search failed")
	ErrBuildFailed  = errors.New("build failed")
)
