package hypercube

import "errors"

// Sentinel errors for the hypercube package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("hypercube: invalid move notation")

	// Setup errors
	ErrInvalidConfig = errors.New("hypercube: invalid config")

	// State errors
	ErrBusy = errors.New("hypercube: a move is in progress")
)
