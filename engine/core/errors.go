package core

import (
	"errors"
)

var (
	ErrInvalidDimensions = errors.New("dimensions must be greater than zero")
	ErrNotInitialized    = errors.New("system not initialized")
	ErrAlreadyRunning    = errors.New("engine already running")
	ErrQuitRequested     = errors.New("quit requested")
	ErrUnknown           = errors.New("unknown")
)
