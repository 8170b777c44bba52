package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todokeeper/internal/models"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
		wantErr  bool
	}{
		{name: "valid - lowercase", username: "alice"},
		{name: "valid - mixed with digits", username: "Alice123"},
		{name: "valid - allowed symbols", username: "alice.smith+todo@corp-1_x"},
		{name: "valid - max length", username: strings.Repeat("a", MaxUsernameLen)},
		{name: "invalid - empty", username: "", wantErr: true, errMsg: "username cannot be empty"},
		{name: "invalid - spaces only", username: "   ", wantErr: true, errMsg: "username cannot be empty"},
		{name: "invalid - too long", username: strings.Repeat("a", MaxUsernameLen+1), wantErr: true, errMsg: "must not exceed"},
		{name: "invalid - inner space", username: "alice smith", wantErr: true, errMsg: "can only contain"},
		{name: "invalid - slash", username: "alice/bob", wantErr: true, errMsg: "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			var vErr *models.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "username", vErr.Field)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.NoError(t, ValidateEmail("  alice@example.com "))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("Alice <alice@example.com>"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("x"))

	err := ValidatePassword("")
	require.Error(t, err)
	assert.Equal(t, "password cannot be empty", err.Error())
}

func TestValidateNewPassword(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		confirmation string
		errMsg       string
	}{
		{name: "valid", password: "s3cretpass", confirmation: "s3cretpass"},
		{name: "empty", password: "", confirmation: "", errMsg: "password cannot be empty"},
		{name: "too short", password: "short", confirmation: "short", errMsg: "at least 8 characters"},
		{name: "mismatch", password: "s3cretpass", confirmation: "s3cretpasS", errMsg: "Passwords don't match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewPassword(tt.password, tt.confirmation)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
