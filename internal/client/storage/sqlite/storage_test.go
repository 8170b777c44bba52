package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todokeeper/internal/client/storage"
	"github.com/iudanet/todokeeper/internal/models"
)

func setupTestDB(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func testSession() *storage.SessionData {
	count := 3
	return &storage.SessionData{
		User: models.UserProfile{
			ID:        7,
			Username:  "bob",
			Email:     "bob@example.com",
			TodoCount: &count,
		},
		Tokens: storage.TokenData{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    time.Now().Add(time.Hour).Unix(),
			Sealed:       true,
		},
	}
}

func TestNew_FileDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "client.sqlite")

	s, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Повторное открытие не должно заново применять миграции
	s, err = New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestStorage_SaveGetDeleteSession(t *testing.T) {
	ctx := context.Background()
	s := setupTestDB(t)

	_, err := s.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	want := testSession()
	require.NoError(t, s.SaveSession(ctx, want))

	got, err := s.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Upsert заменяет существующие строки
	want.Tokens.AccessToken = "rotated"
	want.Tokens.Sealed = false
	require.NoError(t, s.SaveSession(ctx, want))

	got, err = s.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rotated", got.Tokens.AccessToken)
	assert.False(t, got.Tokens.Sealed)

	require.NoError(t, s.DeleteSession(ctx))
	_, err = s.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	assert.ErrorIs(t, s.DeleteSession(ctx), storage.ErrSessionNotFound)
}

func TestStorage_GetSession_RequiresBothEntries(t *testing.T) {
	ctx := context.Background()
	s := setupTestDB(t)

	require.NoError(t, s.SaveSession(ctx, testSession()))

	_, err := s.db.ExecContext(ctx, `DELETE FROM session_user`)
	require.NoError(t, err)

	_, err = s.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// Остаток сессии удаляется без ошибки
	require.NoError(t, s.DeleteSession(ctx))
}

func TestStorage_SaveSession_Nil(t *testing.T) {
	s := setupTestDB(t)
	assert.Error(t, s.SaveSession(context.Background(), nil))
}

func TestStorage_Closed(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, s.SaveSession(ctx, testSession()), storage.ErrStorageClosed)

	_, err = s.GetSealSalt(ctx)
	assert.Error(t, err)
}

func TestSealSalt(t *testing.T) {
	ctx := context.Background()
	s := setupTestDB(t)

	salt, err := s.GetSealSalt(ctx)
	require.NoError(t, err)
	assert.Nil(t, salt)

	want := []byte{1, 2, 3, 4}
	require.NoError(t, s.SaveSealSalt(ctx, want))

	salt, err = s.GetSealSalt(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, salt)
}
