package models

import "time"

// UserProfile представляет профиль пользователя, как его отдает сервер
type UserProfile struct {
	JoinedAt  *time.Time `json:"joined_at,omitempty"`  // дата регистрации (может отсутствовать)
	TodoCount *int       `json:"todo_count,omitempty"` // количество задач пользователя
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	ID        int64      `json:"id"`
	IsAdmin   bool       `json:"is_admin"`
}

// Key returns the identity used by paged collections.
func (u UserProfile) Key() int64 {
	return u.ID
}

// Session is the in-memory view of the current login.
// User is non-nil iff AccessToken is non-empty.
type Session struct {
	ExpiresAt    time.Time
	User         *UserProfile
	AccessToken  string
	RefreshToken string
}

// IsLive reports whether the session carries both a user and an access token.
func (s *Session) IsLive() bool {
	return s != nil && s.User != nil && s.AccessToken != ""
}

// TokenPair is the access/refresh pair issued at login, registration and renewal.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
