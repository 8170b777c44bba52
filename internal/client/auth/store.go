package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iudanet/todokeeper/internal/client/storage"
	"github.com/iudanet/todokeeper/internal/crypto"
	"github.com/iudanet/todokeeper/internal/models"
)

// Backend is the part of storage.Store used by the credential store.
type Backend interface {
	storage.SessionStorage
	storage.MetadataStorage
}

// CredentialStore persists the session (token pair + user profile) and
// optionally seals the tokens at rest.
// It sits between the Manager and the storage backend: the backend only
// ever sees sealed tokens when a passphrase is configured.
type CredentialStore struct {
	backend Backend
	sealer  *crypto.Sealer // nil - токены хранятся как есть
}

// NewCredentialStore creates a store over backend.
// With a non-empty passphrase the tokens are sealed with a key derived from
// the passphrase and a per-database salt, created on first use.
func NewCredentialStore(ctx context.Context, backend Backend, passphrase string) (*CredentialStore, error) {
	cs := &CredentialStore{backend: backend}
	if passphrase == "" {
		return cs, nil
	}

	salt, err := backend.GetSealSalt(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read seal salt: %w", err)
	}
	if salt == nil {
		if salt, err = crypto.GenerateSalt(); err != nil {
			return nil, err
		}
		if err := backend.SaveSealSalt(ctx, salt); err != nil {
			return nil, fmt.Errorf("failed to save seal salt: %w", err)
		}
	}

	key, err := crypto.DeriveKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive seal key: %w", err)
	}
	if cs.sealer, err = crypto.NewSealer(key); err != nil {
		return nil, err
	}

	return cs, nil
}

// Load returns the stored session.
// An empty session (not an error) is returned when either entry is missing.
func (s *CredentialStore) Load(ctx context.Context) (*models.Session, error) {
	data, err := s.backend.GetSession(ctx)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return &models.Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	access, refresh := data.Tokens.AccessToken, data.Tokens.RefreshToken
	if data.Tokens.Sealed {
		if s.sealer == nil {
			return nil, ErrPassphraseRequired
		}
		if access, err = s.sealer.Open(access); err != nil {
			return nil, fmt.Errorf("failed to unseal access token: %w", err)
		}
		if refresh, err = s.sealer.Open(refresh); err != nil {
			return nil, fmt.Errorf("failed to unseal refresh token: %w", err)
		}
	}

	if access == "" {
		return &models.Session{}, nil
	}

	user := data.User
	sess := &models.Session{
		User:         &user,
		AccessToken:  access,
		RefreshToken: refresh,
	}
	if data.Tokens.ExpiresAt > 0 {
		sess.ExpiresAt = time.Unix(data.Tokens.ExpiresAt, 0)
	}
	return sess, nil
}

// Save replaces both entries in one transaction.
func (s *CredentialStore) Save(ctx context.Context, user models.UserProfile, tokens models.TokenPair) error {
	if tokens.AccessToken == "" {
		return fmt.Errorf("cannot save session without access token")
	}

	data := &storage.SessionData{
		User: user,
		Tokens: storage.TokenData{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		},
	}
	if exp := TokenExpiry(tokens.AccessToken); !exp.IsZero() {
		data.Tokens.ExpiresAt = exp.Unix()
	}

	if s.sealer != nil {
		var err error
		if data.Tokens.AccessToken, err = s.sealer.Seal(tokens.AccessToken); err != nil {
			return fmt.Errorf("failed to seal access token: %w", err)
		}
		if data.Tokens.RefreshToken, err = s.sealer.Seal(tokens.RefreshToken); err != nil {
			return fmt.Errorf("failed to seal refresh token: %w", err)
		}
		data.Tokens.Sealed = true
	}

	if err := s.backend.SaveSession(ctx, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes both entries. Clearing an empty store is not an error.
func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.backend.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentAccessToken returns the stored access token, "" when there is none.
func (s *CredentialStore) CurrentAccessToken(ctx context.Context) (string, error) {
	sess, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// Returns the zero time for opaque tokens or tokens without exp.
func TokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
