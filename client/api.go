package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// TokenSource supplies the bearer token for authenticated calls and the
// refresh/forced-logout behavior around a 401. *session.Store satisfies it.
type TokenSource interface {
	Token() string
	IsAuthenticated() bool
	RefreshToken(ctx context.Context) bool
	ForceLogout(ctx context.Context)
}

// API is the resource-facing request surface. Every call requires a
// current token and fails fast without one.
//
// On a 401 while the session is believed authenticated it attempts exactly
// one token refresh; when the refresh succeeds the original call is
// retried once with the new token, otherwise the session is force-cleared.
// A second 401 after refresh is terminal.
type API struct {
	c  *Client
	ts TokenSource
}

func NewAPI(c *Client, ts TokenSource) *API {
	return &API{c: c, ts: ts}
}

func (api *API) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	token := api.ts.Token()
	if token == "" {
		return ErrAuthRequired
	}

	err := api.c.do(ctx, method, path, token, query, body, out)
	if err == nil || !IsStatus(err, http.StatusUnauthorized) || !api.ts.IsAuthenticated() {
		return err
	}

	if !api.ts.RefreshToken(ctx) {
		api.ts.ForceLogout(ctx)
		return err
	}
	return api.c.do(ctx, method, path, api.ts.Token(), query, body, out)
}

func (api *API) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return api.do(ctx, http.MethodGet, path, query, nil, out)
}

func (api *API) post(ctx context.Context, path string, body, out interface{}) error {
	return api.do(ctx, http.MethodPost, path, nil, body, out)
}

func (api *API) put(ctx context.Context, path string, body, out interface{}) error {
	return api.do(ctx, http.MethodPut, path, nil, body, out)
}

func (api *API) delete(ctx context.Context, path string) error {
	return api.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListOptions is the common pagination/sorting/filtering shape of the
// backend's list endpoints.
type ListOptions struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
	Filters   map[string]string
}

// query serializes the options; perPageKey differs per endpoint family
// ("perPage" for management lists, "per_page" for nominations).
func (o ListOptions) query(perPageKey string) url.Values {
	v := make(url.Values)
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		v.Set(perPageKey, strconv.Itoa(o.PerPage))
	}
	if o.SortBy != "" {
		v.Set("sortBy", o.SortBy)
	}
	if o.SortOrder != "" {
		v.Set("sortOrder", o.SortOrder)
	}
	for key, val := range o.Filters {
		if val != "" {
			v.Set(key, val)
		}
	}
	return v
}

// Pagination is the backend's paginator envelope around list data.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
	From        int `json:"from,omitempty"`
	To          int `json:"to,omitempty"`
}
