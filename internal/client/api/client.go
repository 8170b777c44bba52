package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// basePath is the API prefix appended to the server URL
	basePath = "/api"

	// maxResponseSize ограничивает размер читаемого тела ответа (10MB)
	maxResponseSize = 10 << 20

	// HeaderRequestID carries the per-request correlation id
	HeaderRequestID = "X-Request-ID"
)

// Request describes one API call relative to the API base path.
type Request struct {
	Query  url.Values
	Body   any // сериализуется в JSON при каждой отправке
	Method string
	Path   string // e.g. "/todos/"
}

// Response is a fully read HTTP response.
type Response struct {
	Header     http.Header
	Body       []byte
	StatusCode int
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client представляет HTTP клиент для взаимодействия с сервером.
// Client itself never attaches or renews credentials beyond the token it is given;
// see Gateway for authenticated calls.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient uses a copy of hc, so later options never touch the caller's client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.httpClient = &cp
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient создает новый API клиент для сервера serverURL (без /api)
func NewClient(serverURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(serverURL, "/") + basePath,
		logger:  slog.New(slog.DiscardHandler),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do выполняет HTTP запрос.
// A non-2xx status is not an error here: the response is returned as is.
// Transport failures are wrapped with ErrNetworkUnavailable.
func (c *Client) Do(ctx context.Context, r *Request, accessToken string) (*Response, error) {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var bodyReader io.Reader
	if r.Body != nil {
		jsonData, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Отмена контекста - это не сетевая ошибка
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, ctxErr)
		}
		c.logger.WarnContext(ctx, "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.Path),
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetworkUnavailable, r.Method, r.Path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrNetworkUnavailable, err)
	}

	c.logger.DebugContext(ctx, "HTTP request",
		slog.String("method", r.Method),
		slog.String("path", r.Path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		slog.String("request_id", requestID))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// decode checks the status and unmarshals a successful body into result.
func decode(resp *Response, result any) error {
	if !resp.OK() {
		return newError(resp)
	}

	if result == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp.Body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
