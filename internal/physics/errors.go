package physics

import "errors"

var (
	// ErrInvalidRadius indicates a body or arena with a non-positive radius.
	ErrInvalidRadius = errors.New("physics: radius must be positive")

	// ErrInvalidArena indicates an arena that cannot contain a body of the requested size.
	ErrInvalidArena = errors.New("physics: arena too small for body")
)
