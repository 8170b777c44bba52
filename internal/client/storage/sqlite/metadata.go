package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const keySealSalt = "seal_salt"

// SaveSealSalt saves the salt used to derive the token sealing key
func (s *Storage) SaveSealSalt(ctx context.Context, salt []byte) error {
	if s.db == nil {
		return fmt.Errorf("failed to save seal salt: database is closed")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		keySealSalt, salt,
	)
	if err != nil {
		return fmt.Errorf("failed to save seal salt: %w", err)
	}
	return nil
}

// GetSealSalt retrieves the sealing salt
// Returns nil if no salt has been saved yet
func (s *Storage) GetSealSalt(ctx context.Context) ([]byte, error) {
	if s.db == nil {
		return nil, fmt.Errorf("failed to get seal salt: database is closed")
	}

	var salt []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, keySealSalt).Scan(&salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get seal salt: %w", err)
	}
	return salt, nil
}
