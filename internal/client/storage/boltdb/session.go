package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/todokeeper/internal/client/storage"
)

var (
	keyTokens = []byte("tokens")
	keyUser   = []byte("user")
)

// SaveSession stores the token pair and the user profile in one transaction
func (s *Storage) SaveSession(ctx context.Context, session *storage.SessionData) error {
	if session == nil {
		return fmt.Errorf("session data is nil")
	}

	// Сериализуем обе записи до открытия транзакции
	tokens, err := json.Marshal(session.Tokens)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}
	user, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}
		if err := bucket.Put(keyTokens, tokens); err != nil {
			return fmt.Errorf("failed to save tokens: %w", err)
		}
		if err := bucket.Put(keyUser, user); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		return nil
	})
}

// GetSession retrieves the stored session
func (s *Storage) GetSession(ctx context.Context) (*storage.SessionData, error) {
	var session *storage.SessionData

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		tokens := bucket.Get(keyTokens)
		user := bucket.Get(keyUser)
		// Сессия считается живой только при наличии обеих записей
		if tokens == nil || user == nil {
			return storage.ErrSessionNotFound
		}

		session = &storage.SessionData{}
		if err := json.Unmarshal(tokens, &session.Tokens); err != nil {
			return fmt.Errorf("failed to unmarshal tokens: %w", err)
		}
		if err := json.Unmarshal(user, &session.User); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession removes both session entries
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if bucket.Get(keyTokens) == nil && bucket.Get(keyUser) == nil {
			return storage.ErrSessionNotFound
		}

		if err := bucket.Delete(keyTokens); err != nil {
			return fmt.Errorf("failed to delete tokens: %w", err)
		}
		if err := bucket.Delete(keyUser); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
