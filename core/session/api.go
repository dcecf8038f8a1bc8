package session

import (
	"context"
	"errors"
)

var (
	// ErrNotAuthenticated is returned when an operation requires a token
	// and none is present. No network call is made in that case.
	ErrNotAuthenticated = errors.New("authentication required")

	// ErrAccountLocked is a distinguished login failure: the account exists
	// but has been locked out. It must never be conflated with bad
	// credentials; the backend message wrapping it is shown as-is.
	ErrAccountLocked = errors.New("account locked")
)

// AuthAPI is the backend authentication surface the store depends on.
// The client package provides the HTTP implementation.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*LoginData, error)
	Logout(ctx context.Context, token string) error
	FetchAuthUser(ctx context.Context, token string) (*ProfileData, error)
	Refresh(ctx context.Context, token string) (*TokenData, error)
	SetNewPassword(ctx context.Context, token string, payload SetPassword) (*TokenData, error)
	ResetPassword(ctx context.Context, payload ResetPassword) (string, error)
	SendResetLink(ctx context.Context, email string) (string, error)
}

// Storage persists the auth state under a single key, the way the browser
// frontend keeps it in localStorage. It is only a restore hint at startup;
// the in-memory store stays authoritative.
type Storage interface {
	Load() (*State, error)
	Save(State) error
	Clear() error
}

// StatusError is implemented by API errors that carry an HTTP status.
type StatusError interface {
	StatusCode() int
}

// IsUnauthorized reports whether err (or its cause) is a 401 API error.
func IsUnauthorized(err error) bool {
	var sErr StatusError
	if errors.As(err, &sErr) {
		return sErr.StatusCode() == 401
	}
	return false
}
