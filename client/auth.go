package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/SatuPadu/fses-client/core/session"
)

// AuthClient implements session.AuthAPI over HTTP.
type AuthClient struct {
	c *Client
}

var _ session.AuthAPI = (*AuthClient)(nil)

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

func (a *AuthClient) Login(ctx context.Context, creds session.Credentials) (*session.LoginData, error) {
	var data session.LoginData
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", "", nil, creds, &data); err != nil {
		return nil, asLoginError(err)
	}
	return &data, nil
}

func (a *AuthClient) Logout(ctx context.Context, token string) error {
	return a.c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil, nil)
}

func (a *AuthClient) FetchAuthUser(ctx context.Context, token string) (*session.ProfileData, error) {
	var data session.ProfileData
	if err := a.c.do(ctx, http.MethodGet, "/auth/auth-user", token, nil, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (a *AuthClient) Refresh(ctx context.Context, token string) (*session.TokenData, error) {
	var data session.TokenData
	if err := a.c.do(ctx, http.MethodPost, "/auth/refresh", token, nil, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (a *AuthClient) SetNewPassword(ctx context.Context, token string, payload session.SetPassword) (*session.TokenData, error) {
	var data session.TokenData
	if err := a.c.do(ctx, http.MethodPost, "/auth/set-new-password", token, nil, payload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (a *AuthClient) ResetPassword(ctx context.Context, payload session.ResetPassword) (string, error) {
	return a.message(ctx, "/password/reset", payload)
}

func (a *AuthClient) SendResetLink(ctx context.Context, email string) (string, error) {
	return a.message(ctx, "/password/reset-link", map[string]string{"email": email})
}

func (a *AuthClient) message(ctx context.Context, path string, body interface{}) (string, error) {
	var data struct {
		Message string `json:"message"`
	}
	if err := a.c.do(ctx, http.MethodPost, path, "", nil, body, &data); err != nil {
		return "", err
	}
	return data.Message, nil
}

// asLoginError distinguishes the account-locked login failure from a
// generic one; the backend signals it with a 423 or a lock message.
func asLoginError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusLocked || strings.Contains(strings.ToLower(apiErr.Message), "locked") {
			if apiErr.Message == "" {
				return session.ErrAccountLocked
			}
			return errors.WithMessage(session.ErrAccountLocked, apiErr.Message)
		}
	}
	return err
}
