package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

const (
	keySealSalt = "seal_salt"
)

// SaveSealSalt saves the salt used to derive the token sealing key
func (s *Storage) SaveSealSalt(ctx context.Context, salt []byte) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keySealSalt), salt); err != nil {
			return fmt.Errorf("failed to save seal salt: %w", err)
		}

		return nil
	})
}

// GetSealSalt retrieves the sealing salt
// Returns nil if no salt has been saved yet
func (s *Storage) GetSealSalt(ctx context.Context) ([]byte, error) {
	var salt []byte

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Значение валидно только внутри транзакции, копируем
		if v := bucket.Get([]byte(keySealSalt)); v != nil {
			salt = append([]byte(nil), v...)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get seal salt: %w", err)
	}

	return salt, nil
}
