package client

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/SatuPadu/fses-client/core"
)

func discardLog() *log.Logger { return log.New(io.Discard, "", 0) }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := new(core.Config)
	conf.API.BaseURL = srv.URL
	conf.API.RequestTimeout = 5 * time.Second
	return New(conf, core.StdLogger{Std: discardLog()}), srv
}

func TestClient_do_envelope(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int    // 0 means no APIError expected
		wantMessage string
		wantFields  map[string][]string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"success":true,"data":{"name":"ok"}}`,
		},
		{
			name:        "error field overrides success",
			status:      http.StatusOK,
			body:        `{"success":true,"data":null,"error":{"message":"backend exploded"}}`,
			wantStatus:  http.StatusOK,
			wantMessage: "backend exploded",
		},
		{
			name:        "error field falls back to message",
			status:      http.StatusOK,
			body:        `{"success":true,"message":"outer message","error":{}}`,
			wantStatus:  http.StatusOK,
			wantMessage: "outer message",
		},
		{
			name:        "success false surfaces message verbatim",
			status:      http.StatusOK,
			body:        `{"success":false,"message":"quota exceeded"}`,
			wantStatus:  http.StatusOK,
			wantMessage: "quota exceeded",
		},
		{
			name:        "validation fields as lists",
			status:      http.StatusUnprocessableEntity,
			body:        `{"success":false,"message":"Validation failed","data":{"email":["email is taken","email is invalid"]}}`,
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Validation failed",
			wantFields:  map[string][]string{"email": {"email is taken", "email is invalid"}},
		},
		{
			name:        "validation fields as single strings",
			status:      http.StatusUnprocessableEntity,
			body:        `{"success":false,"message":"Validation failed","data":{"name":"name is required"}}`,
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Validation failed",
			wantFields:  map[string][]string{"name": {"name is required"}},
		},
		{
			name:        "non-JSON failure body",
			status:      http.StatusBadGateway,
			body:        `<html>nginx</html>`,
			wantStatus:  http.StatusBadGateway,
			wantMessage: "Bad Gateway",
		},
		{
			name:        "plain 404 envelope",
			status:      http.StatusNotFound,
			body:        `{"success":false,"message":"Student not found"}`,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Student not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			var out struct {
				Name string `json:"name"`
			}
			err := c.do(context.Background(), http.MethodGet, "/thing", "", nil, nil, &out)

			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("do() unexpected error = %v", err)
				}
				if out.Name != "ok" {
					t.Errorf("do() out = %+v", out)
				}
				return
			}

			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("do() error = %T (%v), want *APIError", err, err)
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if tt.wantFields != nil && !reflect.DeepEqual(apiErr.Fields, tt.wantFields) {
				t.Errorf("Fields = %v, want %v", apiErr.Fields, tt.wantFields)
			}
		})
	}
}

func TestClient_do_authHeader(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	ctx := context.Background()

	if err := c.do(ctx, http.MethodGet, "/x", "", nil, nil, nil); err != nil {
		t.Fatalf("do() unexpected error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty for public calls", gotAuth)
	}

	if err := c.do(ctx, http.MethodGet, "/x", "tok123", nil, nil, nil); err != nil {
		t.Fatalf("do() unexpected error = %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok123")
	}
}

func TestIsStatus(t *testing.T) {
	err := &APIError{Status: http.StatusNotFound, Message: "nope"}
	if !IsStatus(err, http.StatusNotFound) {
		t.Error("IsStatus() = false, want true")
	}
	if IsStatus(err, http.StatusForbidden) {
		t.Error("IsStatus() matched the wrong status")
	}
	if IsStatus(nil, http.StatusNotFound) {
		t.Error("IsStatus(nil) = true")
	}
}

func TestAPIError_Error(t *testing.T) {
	if got := (&APIError{Status: 500, Message: "boom"}).Error(); got != "boom" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&APIError{Status: 500}).Error(); got != "request failed with status 500" {
		t.Errorf("Error() = %q", got)
	}
}
