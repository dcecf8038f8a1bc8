package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SatuPadu/fses-client/core/session"
)

// NewUser is the create-user payload. Roles are role names.
type NewUser struct {
	StaffNumber string   `json:"staff_number"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Department  *string  `json:"department,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// UpdateUser is the modify-user payload; zero fields are left unchanged
// server-side.
type UpdateUser struct {
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Department *string  `json:"department,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

type userPage struct {
	Pagination
	Data []session.User `json:"data"`
}

// GetUsers lists user accounts.
func (api *API) GetUsers(ctx context.Context, opts ListOptions) ([]session.User, *Pagination, error) {
	var page userPage
	if err := api.get(ctx, "/users", opts.query("perPage"), &page); err != nil {
		return nil, nil, err
	}
	return page.Data, &page.Pagination, nil
}

func (api *API) CreateUser(ctx context.Context, payload NewUser) (*session.User, error) {
	var usr session.User
	if err := api.post(ctx, "/users", payload, &usr); err != nil {
		return nil, err
	}
	return &usr, nil
}

func (api *API) UpdateUser(ctx context.Context, id int, payload UpdateUser) (*session.User, error) {
	var usr session.User
	if err := api.put(ctx, fmt.Sprintf("/users/%d", id), payload, &usr); err != nil {
		return nil, err
	}
	return &usr, nil
}

// DeactivateUser soft-deletes the account; it can be reactivated later.
func (api *API) DeactivateUser(ctx context.Context, id int) error {
	return api.delete(ctx, fmt.Sprintf("/users/%d", id))
}

func (api *API) ReactivateUser(ctx context.Context, id int) error {
	return api.do(ctx, http.MethodPost, fmt.Sprintf("/auth/reactivate/%d", id), nil, nil, nil)
}
