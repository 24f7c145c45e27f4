package domain

import "errors"

// ErrInvalidDirection is returned when a direction token is not one of l, r, n.
var ErrInvalidDirection = errors.New("invalid direction")

// ErrInvalidProgram is returned when a program definition is structurally unusable.
var ErrInvalidProgram = errors.New("invalid program")

// ErrProgramNotFound is returned when a program name cannot be found in the store.
var ErrProgramNotFound = errors.New("program not found")

// ErrSessionNotFound is returned when a session ID does not name a live machine.
var ErrSessionNotFound = errors.New("session not found")
