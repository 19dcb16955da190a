package core

import (
	"errors"
)

var (
	ErrNotInitialized = errors.New("engine not initialized")
	ErrAlreadyRunning = errors.New("engine already running")
	ErrUnknown        = errors.New("unknown")
)
