package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/todokeeper/internal/client/storage"
)

// SaveSession stores the token pair and the user profile in one transaction
func (s *Storage) SaveSession(ctx context.Context, session *storage.SessionData) error {
	if session == nil {
		return fmt.Errorf("session data is nil")
	}

	profile, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session_tokens (slot, access_token, refresh_token, expires_at, sealed)
			VALUES (1, ?, ?, ?, ?)
			ON CONFLICT(slot) DO UPDATE SET
				access_token = excluded.access_token,
				refresh_token = excluded.refresh_token,
				expires_at = excluded.expires_at,
				sealed = excluded.sealed`,
			session.Tokens.AccessToken,
			session.Tokens.RefreshToken,
			session.Tokens.ExpiresAt,
			session.Tokens.Sealed,
		)
		if err != nil {
			return fmt.Errorf("failed to save tokens: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO session_user (slot, profile) VALUES (1, ?)
			ON CONFLICT(slot) DO UPDATE SET profile = excluded.profile`,
			string(profile),
		)
		if err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		return nil
	})
}

// GetSession retrieves the stored session
// Returns storage.ErrSessionNotFound if either entry is missing
func (s *Storage) GetSession(ctx context.Context) (*storage.SessionData, error) {
	var session *storage.SessionData

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var (
			tokens  storage.TokenData
			profile string
		)

		err := tx.QueryRowContext(ctx, `
			SELECT access_token, refresh_token, expires_at, sealed
			FROM session_tokens WHERE slot = 1`,
		).Scan(&tokens.AccessToken, &tokens.RefreshToken, &tokens.ExpiresAt, &tokens.Sealed)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrSessionNotFound
			}
			return fmt.Errorf("failed to query tokens: %w", err)
		}

		err = tx.QueryRowContext(ctx, `SELECT profile FROM session_user WHERE slot = 1`).Scan(&profile)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrSessionNotFound
			}
			return fmt.Errorf("failed to query user: %w", err)
		}

		session = &storage.SessionData{Tokens: tokens}
		if err := json.Unmarshal([]byte(profile), &session.User); err != nil {
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
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var removed int64

		for _, query := range []string{
			`DELETE FROM session_tokens`,
			`DELETE FROM session_user`,
		} {
			res, err := tx.ExecContext(ctx, query)
			if err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get affected rows: %w", err)
			}
			removed += n
		}

		if removed == 0 {
			return storage.ErrSessionNotFound
		}
		return nil
	})
}
