package validation

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/iudanet/todokeeper/internal/models"
)

// UsernamePattern определяет допустимый формат username
// Буквы, цифры и символы @ . + - _
var UsernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

const (
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 150
	// MinPasswordLen минимальная длина нового пароля
	MinPasswordLen = 8
)

// ValidateUsername проверяет, что username соответствует требованиям сервера
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.NewValidationError("username", "username cannot be empty")
	}

	if len(username) > MaxUsernameLen {
		return models.NewValidationError("username", "username must not exceed 150 characters")
	}

	if !UsernamePattern.MatchString(username) {
		return models.NewValidationError("username", "username can only contain letters, numbers, and @/./+/-/_ characters")
	}

	return nil
}

// ValidateEmail проверяет формат email
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.NewValidationError("email", "email cannot be empty")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return models.NewValidationError("email", "enter a valid email address")
	}

	return nil
}

// ValidatePassword проверяет, что пароль для входа задан
func ValidatePassword(password string) error {
	if password == "" {
		return models.NewValidationError("password", "password cannot be empty")
	}
	return nil
}

// ValidateNewPassword проверяет пароль при регистрации и совпадение с подтверждением
func ValidateNewPassword(password, confirmation string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	if len(password) < MinPasswordLen {
		return models.NewValidationError("password", "password must be at least 8 characters long")
	}

	if password != confirmation {
		return models.NewValidationError("password", "Passwords don't match")
	}

	return nil
}
