package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/iudanet/todokeeper/internal/models"
)

var (
	// ErrNetworkUnavailable indicates the server could not be reached at all
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrSessionTerminated indicates token renewal failed and the local session was cleared
	ErrSessionTerminated = errors.New("session terminated")
)

// Kind classifies server-reported failures.
type Kind int

const (
	KindOther        Kind = iota // прочие 4xx
	KindValidation               // 400, 409, 422
	KindUnauthorized             // 401
	KindForbidden                // 403
	KindNotFound                 // 404
	KindServer                   // 5xx
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "other"
	}
}

// Error is a non-2xx response from the API.
type Error struct {
	Payload ErrorPayload
	Status  int
	Kind    Kind
}

func newError(resp *Response) *Error {
	return &Error{
		Status:  resp.StatusCode,
		Kind:    kindOf(resp.StatusCode),
		Payload: ParseErrorPayload(resp.Body),
	}
}

func kindOf(status int) Kind {
	switch {
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindOther
	}
}

func (e *Error) Error() string {
	if msg := e.Payload.Message(); msg != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, msg)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Message returns the text shown to the user for this error.
func (e *Error) Message() string {
	if msg := e.Payload.Message(); msg != "" {
		return msg
	}

	switch e.Kind {
	case KindUnauthorized:
		return "Authentication required"
	case KindForbidden:
		return "You do not have permission to perform this action"
	case KindNotFound:
		return "Not found"
	case KindServer:
		return fmt.Sprintf("Server error (%d)", e.Status)
	default:
		return fmt.Sprintf("Request failed (%d)", e.Status)
	}
}

// notFoundHints are server phrases that also mean "record is gone"
// when a 404 status is not available (e.g. proxied errors).
var notFoundHints = []string{"not found", "no todo matches"}

// IsNotFound reports whether err means the target record no longer exists.
// The HTTP status is authoritative; the message is only a fallback.
func IsNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Kind == KindNotFound {
		return true
	}
	if apiErr.Kind == KindUnauthorized || apiErr.Kind == KindForbidden {
		return false
	}

	msg := strings.ToLower(apiErr.Payload.Message())
	for _, hint := range notFoundHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

// IsKind reports whether err is an API error of kind k.
func IsKind(err error, k Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == k
}

// Message converts any error returned by the client stack into one
// human-readable line.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}

	if errors.Is(err, ErrSessionTerminated) {
		return "Your session has expired. Please log in again."
	}

	if errors.Is(err, ErrNetworkUnavailable) {
		return "Cannot reach the server. Check your connection and try again."
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}

	return err.Error()
}
