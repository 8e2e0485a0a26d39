package ecosys

import "errors"

var (
	// ErrInvalidParams indicates a grid parameter outside its valid range.
	ErrInvalidParams = errors.New("ecosys: invalid grid parameters")

	// ErrCapacity indicates more agents than free cells.
	ErrCapacity = errors.New("ecosys: not enough free cells")
)
