// Package testutil provides a fake evaluation backend for exercising the
// client and session layers against real HTTP.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"

	"github.com/SatuPadu/fses-client/core/session"
)

type envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   map[string]string `json:"error,omitempty"`
}

func ok(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Success: false, Message: message})
}

// FakeAPI is an in-process evaluation backend. Knobs (Locked, FailRefresh,
// ExpireToken) steer it into the failure paths under test.
type FakeAPI struct {
	*httptest.Server

	mu      sync.Mutex
	token   string
	expired string

	User  session.User
	Roles []session.Role

	Password       string
	Locked         bool
	FailRefresh    bool
	Students       []map[string]interface{}
	ImportStatuses []string

	LoginCalls   int
	LogoutCalls  int
	RefreshCalls int
	ProfileCalls int
}

func NewFakeAPI(usr session.User, roles []session.Role, password string) *FakeAPI {
	f := &FakeAPI{
		User:           usr,
		Roles:          roles,
		Password:       password,
		ImportStatuses: []string{"processing", "completed"},
	}

	e := echo.New()
	e.HideBanner = true

	e.POST("/auth/login", f.login)
	e.POST("/auth/logout", f.logout)
	e.GET("/auth/auth-user", f.authUser)
	e.POST("/auth/refresh", f.refresh)
	e.POST("/auth/set-new-password", f.setNewPassword)
	e.POST("/password/reset", f.resetPassword)
	e.POST("/password/reset-link", f.resetLink)
	e.GET("/students", f.listStudents)
	e.GET("/imports/:id/status", f.importStatus)
	e.GET("/imports/:id/stream", f.importStream)

	f.Server = httptest.NewServer(e)
	return f
}

// Token returns the currently valid access token ("" when logged out).
func (f *FakeAPI) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// ExpireToken invalidates the current token so the next authenticated
// call fails with 401. The expired token stays acceptable to the refresh
// endpoint, as with a real short-lived JWT inside its refresh window.
func (f *FakeAPI) ExpireToken() {
	f.mu.Lock()
	f.expired = f.token
	f.token = ""
	f.mu.Unlock()
}

func (f *FakeAPI) rotateToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = random.String(32)
	return f.token
}

func (f *FakeAPI) authorized(c echo.Context) bool {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	tok := strings.TrimPrefix(auth, "Bearer ")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token != "" && tok == f.token
}

func (f *FakeAPI) login(c echo.Context) error {
	f.LoginCalls++

	var creds session.Credentials
	if err := c.Bind(&creds); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if f.Locked {
		return fail(c, http.StatusLocked, "Account locked. Please contact the office assistant.")
	}
	if creds.Email != f.User.Email || creds.Password != f.Password {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	return ok(c, session.LoginData{
		AccessToken: f.rotateToken(),
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		User:        f.User,
		Roles:       f.Roles,
	}, "Login successful")
}

func (f *FakeAPI) logout(c echo.Context) error {
	f.LogoutCalls++
	if !f.authorized(c) {
		return fail(c, http.StatusUnauthorized, "Unauthenticated")
	}
	f.ExpireToken()
	return ok(c, nil, "Logged out")
}

func (f *FakeAPI) authUser(c echo.Context) error {
	f.ProfileCalls++
	if !f.authorized(c) {
		return fail(c, http.StatusUnauthorized, "Unauthenticated")
	}
	return ok(c, session.ProfileData{User: f.User, Roles: f.Roles}, "")
}

func (f *FakeAPI) refresh(c echo.Context) error {
	f.RefreshCalls++
	if f.FailRefresh {
		return fail(c, http.StatusUnauthorized, "Token expired")
	}
	tok := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	f.mu.Lock()
	refreshable := tok != "" && (tok == f.token || tok == f.expired)
	f.mu.Unlock()
	if !refreshable {
		return fail(c, http.StatusUnauthorized, "Unauthenticated")
	}
	return ok(c, session.TokenData{AccessToken: f.rotateToken()}, "")
}

func (f *FakeAPI) setNewPassword(c echo.Context) error {
	if !f.authorized(c) {
		return fail(c, http.StatusUnauthorized, "Unauthenticated")
	}
	f.User.IsPasswordUpdated = true
	return ok(c, session.TokenData{AccessToken: f.rotateToken()}, "Password updated")
}

func (f *FakeAPI) resetPassword(c echo.Context) error {
	return ok(c, nil, "Password has been reset")
}

func (f *FakeAPI) resetLink(c echo.Context) error {
	return ok(c, nil, "Reset link sent")
}

func (f *FakeAPI) listStudents(c echo.Context) error {
	if !f.authorized(c) {
		return fail(c, http.StatusUnauthorized, "Unauthenticated")
	}
	return ok(c, map[string]interface{}{
		"data":         f.Students,
		"current_page": 1,
		"per_page":     15,
		"total":        len(f.Students),
		"last_page":    1,
	}, "")
}

func (f *FakeAPI) importStatus(c echo.Context) error {
	if !f.authorized(c) {
		return fail(c, http.StatusUnauthorized, "Unauthenticated")
	}
	status := "completed"
	if len(f.ImportStatuses) > 0 {
		status = f.ImportStatuses[len(f.ImportStatuses)-1]
	}
	return ok(c, map[string]interface{}{
		"import_id": c.Param("id"),
		"status":    status,
	}, "")
}

// EventSource-style auth: the token rides a query parameter.
func (f *FakeAPI) importStream(c echo.Context) error {
	f.mu.Lock()
	tokOK := f.token != "" && c.QueryParam("token") == f.token
	f.mu.Unlock()
	if !tokOK {
		return c.NoContent(http.StatusUnauthorized)
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.WriteHeader(http.StatusOK)
	for _, status := range f.ImportStatuses {
		fmt.Fprintf(resp, "data: {\"import_id\":%q,\"status\":%q,\"message\":%q}\n\n",
			c.Param("id"), status, "import "+status)
		resp.Flush()
	}
	return nil
}
