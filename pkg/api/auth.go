package api

import "time"

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"` // подтверждение пароля
}

// User представляет профиль пользователя в ответах сервера
type User struct {
	DateJoined *time.Time `json:"date_joined,omitempty"`
	TodoCount  *int       `json:"todo_count,omitempty"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	ID         int64      `json:"id"`
	IsAdmin    bool       `json:"is_admin"`
}

// Tokens представляет пару токенов
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthResponse представляет ответ на успешный login/register
type AuthResponse struct {
	User   User   `json:"user"`
	Tokens Tokens `json:"tokens"`
}

// RefreshRequest представляет запрос на обновление access token
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse представляет ответ на обновление токена.
// Refresh пустой, если сервер не выдал новый refresh token.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// LogoutRequest передает refresh token для отзыва на сервере
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// ErrorResponse представляет ответ с ошибкой вида {"error": "..."}
type ErrorResponse struct {
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}
