package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/todokeeper/internal/models"
	"github.com/iudanet/todokeeper/pkg/api"
)

// AuthResult is a successful login or registration.
type AuthResult struct {
	User   models.UserProfile
	Tokens models.TokenPair
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*AuthResult, error) {
	var resp api.AuthResponse
	if err := c.call(ctx, &Request{Method: http.MethodPost, Path: "/auth/login/", Body: req}, "", &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return authResult(resp), nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*AuthResult, error) {
	var resp api.AuthResponse
	if err := c.call(ctx, &Request{Method: http.MethodPost, Path: "/auth/register/", Body: req}, "", &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return authResult(resp), nil
}

// Refresh обменивает refresh token на новый access token.
// The returned pair carries the old refresh token if the server did not rotate it.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var resp api.RefreshResponse
	req := &Request{
		Method: http.MethodPost,
		Path:   "/auth/token/refresh/",
		Body:   api.RefreshRequest{Refresh: refreshToken},
	}
	if err := c.call(ctx, req, "", &resp); err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	if resp.Access == "" {
		return nil, fmt.Errorf("token refresh failed: empty access token in response")
	}

	pair := &models.TokenPair{AccessToken: resp.Access, RefreshToken: resp.Refresh}
	if pair.RefreshToken == "" {
		pair.RefreshToken = refreshToken
	}
	return pair, nil
}

// Logout уведомляет сервер о выходе и передает refresh token для отзыва
func (c *Client) Logout(ctx context.Context, accessToken, refreshToken string) error {
	req := &Request{
		Method: http.MethodPost,
		Path:   "/auth/logout/",
		Body:   api.LogoutRequest{Refresh: refreshToken},
	}
	if err := c.call(ctx, req, accessToken, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, req *Request, token string, result any) error {
	resp, err := c.Do(ctx, req, token)
	if err != nil {
		return err
	}
	return decode(resp, result)
}

func authResult(resp api.AuthResponse) *AuthResult {
	return &AuthResult{
		User: userFromDTO(resp.User),
		Tokens: models.TokenPair{
			AccessToken:  resp.Tokens.Access,
			RefreshToken: resp.Tokens.Refresh,
		},
	}
}
