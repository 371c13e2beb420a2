package api

import (
	"context"
	"errors"

	"sweetshop-web/internal/models"
)

// Client defines the surface of the remote sweets service this frontend
// consumes. The wire format is owned by the backend; everything here is a
// thin structured wrapper. All network effects in the application go through
// this interface so views stay pure presentation units.
type Client interface {
	ListSweets(ctx context.Context, token string) ([]models.Sweet, error)
	CreateSweet(ctx context.Context, token string, fields models.SweetFields) (*models.Sweet, error)
	UpdateSweet(ctx context.Context, token, id string, fields models.SweetFields) (*models.Sweet, error)
	DeleteSweet(ctx context.Context, token, id string) error
	PurchaseSweet(ctx context.Context, token, id string, quantity int) error
	RestockSweet(ctx context.Context, token, id string, quantity int) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
}

// User is the account identity the backend reports after login/register
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AuthResult is the backend's answer to a successful login or register
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// APIError is a structured failure returned by the sweets service. Message
// carries the optional human-readable text from the response body; callers
// substitute a per-action generic notice when it is empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "sweets api request failed"
}

// ServerMessage extracts the server-provided message from err when err is an
// APIError carrying one, otherwise returns ""
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsUnauthorized reports whether err is an authorization failure from the
// backend, which clears the session rather than rendering a notice
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}
