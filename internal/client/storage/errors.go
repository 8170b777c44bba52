package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no complete session is stored
	ErrSessionNotFound = errors.New("session not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrUnknownDriver indicates an unsupported storage driver name
	ErrUnknownDriver = errors.New("unknown storage driver")
)
