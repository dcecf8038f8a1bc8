// Package client is the typed REST access layer for the FSES backend.
//
// Every endpoint speaks the same envelope {success, data, message, error};
// a present error field is a hard failure overriding success, and a
// success:false message is surfaced verbatim, never hidden behind a
// generic fallback.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/SatuPadu/fses-client/core"
)

// ErrAuthRequired is returned before any network call when no token is
// available.
var ErrAuthRequired = errors.New("authentication token is not available")

// APIError is a structured backend failure.
type APIError struct {
	Status  int
	Message string
	// Fields holds per-field validation messages when the backend returns
	// them in the data payload.
	Fields map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// StatusCode implements session.StatusError.
func (e *APIError) StatusCode() int { return e.Status }

// FieldErrors exposes per-field validation messages, if any.
func (e *APIError) FieldErrors() map[string][]string { return e.Fields }

// IsStatus reports whether err (or its cause) is an APIError with the
// given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client issues envelope-aware requests against the backend base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     core.Logger
}

func New(conf *core.Config, log core.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.API.BaseURL, "/"),
		http:    &http.Client{Timeout: conf.API.RequestTimeout},
		log:     log,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do issues one request and decodes the envelope into out. token may be
// empty for public endpoints. It never retries; reactive 401 retry lives
// in API.do.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out interface{}) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), rdr)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "network error")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return errors.Wrap(err, "decoding response")
	}

	// a present error field overrides success
	if env.Error != nil {
		msg := env.Error.Message
		if msg == "" {
			msg = env.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if !env.Success || resp.StatusCode >= 400 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: env.Message,
			Fields:  decodeFieldErrors(env.Data),
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "decoding response data")
		}
	}
	return nil
}

// decodeFieldErrors reads a validation payload of field → messages; the
// backend sends either a list of messages or a single string per field.
func decodeFieldErrors(data json.RawMessage) map[string][]string {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	var multi map[string][]string
	if err := json.Unmarshal(data, &multi); err == nil {
		return multi
	}
	var single map[string]string
	if err := json.Unmarshal(data, &single); err == nil {
		multi = make(map[string][]string, len(single))
		for fld, msg := range single {
			multi[fld] = []string{msg}
		}
		return multi
	}
	return nil
}
