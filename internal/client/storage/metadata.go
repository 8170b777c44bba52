package storage

import "context"

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveSealSalt saves the random salt used to derive the token sealing key
	SaveSealSalt(ctx context.Context, salt []byte) error

	// GetSealSalt retrieves the sealing salt
	// Returns nil if no salt has been generated yet
	GetSealSalt(ctx context.Context) ([]byte, error)
}

//go:generate moq -out store_mock.go . Store

// Store is everything the credential store needs from a backend.
type Store interface {
	SessionStorage
	MetadataStorage
	Close() error
}
