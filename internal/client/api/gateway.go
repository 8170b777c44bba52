package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

//go:generate moq -out tokensource_mock.go . TokenSource

// TokenSource supplies and renews the credentials used by the Gateway.
// auth.Manager is the production implementation.
type TokenSource interface {
	// AccessToken returns the current access token, "" when anonymous
	AccessToken(ctx context.Context) (string, error)

	// Renew exchanges the refresh token for a new access token.
	// stale is the token that was rejected; implementations may skip the
	// network call if the session already moved past it.
	Renew(ctx context.Context, stale string) (string, error)

	// Terminate clears the session after an unrecoverable renewal failure
	Terminate(ctx context.Context, cause error)
}

// Gateway issues authenticated API calls.
// On a 401 it renews the token once and repeats the request once; it never
// loops. If renewal fails the session is terminated and the caller gets the
// first 401 response together with an error wrapping ErrSessionTerminated.
type Gateway struct {
	client *Client
	tokens TokenSource
	logger *slog.Logger
}

// NewGateway создает шлюз для авторизованных запросов
func NewGateway(client *Client, tokens TokenSource, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gateway{
		client: client,
		tokens: tokens,
		logger: logger,
	}
}

// Send выполняет запрос с текущим access token
func (g *Gateway) Send(ctx context.Context, req *Request) (*Response, error) {
	// Шаг 1: попытка с текущим токеном
	token, err := g.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}

	resp, err := g.client.Do(ctx, req, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// Шаг 2: одно обновление токена и один повтор
	g.logger.DebugContext(ctx, "access token rejected, renewing",
		slog.String("method", req.Method),
		slog.String("path", req.Path))

	fresh, err := g.tokens.Renew(ctx, token)
	if err != nil {
		// брошенный вызов не повод завершать сессию
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("token renewal abandoned: %w", err)
		}
		g.logger.WarnContext(ctx, "token renewal failed, terminating session", slog.Any("error", err))
		g.tokens.Terminate(ctx, err)
		return resp, fmt.Errorf("%w: %w", ErrSessionTerminated, newError(resp))
	}

	return g.client.Do(ctx, req, fresh)
}

func (g *Gateway) call(ctx context.Context, req *Request, result any) error {
	resp, err := g.Send(ctx, req)
	if err != nil {
		return err
	}
	return decode(resp, result)
}
