package storage

import (
	"context"

	"github.com/iudanet/todokeeper/internal/models"
)

// SessionStorage defines interface for persisting the client session.
// The session is kept as two entries (token pair and user profile) that are
// written and removed together in a single transaction.
// This is the lowest storage layer - tokens are stored as given (sealed or not).
type SessionStorage interface {
	// SaveSession stores both entries atomically, replacing previous ones
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession retrieves both entries
	// Returns ErrSessionNotFound if either entry is missing
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession removes both entries (logout)
	// Returns ErrSessionNotFound if there was nothing to delete
	DeleteSession(ctx context.Context) error
}

// SessionData represents the persisted session.
// IMPORTANT: token fields hold ciphertext (base64) when Tokens.Sealed is true;
// sealing and unsealing happen in auth.CredentialStore.
type SessionData struct {
	User   models.UserProfile `json:"user"`
	Tokens TokenData          `json:"tokens"`
}

// TokenData is the persisted token-pair entry.
type TokenData struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	ExpiresAt    int64  `json:"expires_at,omitempty"` // unix seconds, 0 if unknown
	Sealed       bool   `json:"sealed,omitempty"`
}
