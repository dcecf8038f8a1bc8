package session

import (
	"encoding/json"
	"time"

	"github.com/SatuPadu/fses-client/core"
)

// Permissions maps a module name to the actions allowed on it.
//
// The backend is inconsistent about how it encodes this field: depending on
// the endpoint it may be a native JSON object or a JSON-encoded string.
// Both forms are accepted and normalized on decode; anything unparseable
// yields an empty set rather than a decode error, so one malformed role can
// never block the rest of a payload.
type Permissions map[string][]string

func (p *Permissions) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*p = Permissions{}
		return nil
	}
	if data[0] == '"' {
		// double-encoded: a JSON string holding the object
		var s string
		if err := json.Unmarshal(data, &s); err != nil || s == "" {
			*p = Permissions{}
			return nil
		}
		data = []byte(s)
	}
	var m map[string][]string
	if err := json.Unmarshal(data, &m); err != nil {
		*p = Permissions{}
		return nil
	}
	if m == nil {
		m = map[string][]string{}
	}
	*p = m
	return nil
}

// IsEmpty reports whether no module grants any action.
func (p Permissions) IsEmpty() bool {
	for _, actions := range p {
		if len(actions) > 0 {
			return false
		}
	}
	return true
}

// Role is a named bundle of module permissions assigned to a user.
type Role struct {
	ID          int         `json:"id"`
	RoleName    string      `json:"role_name"`
	Description string      `json:"description,omitempty"`
	Permissions Permissions `json:"permissions"`
	CreatedAt   *time.Time  `json:"created_at,omitempty"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

type User struct {
	ID                  int        `json:"id"`
	StaffNumber         string     `json:"staff_number"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Department          *string    `json:"department"`
	LecturerID          *int       `json:"lecturer_id"`
	LastLogin           *time.Time `json:"last_login"`
	PasswordResetExpiry *time.Time `json:"password_reset_expiry"`
	IsActive            bool       `json:"is_active"`
	IsPasswordUpdated   bool       `json:"is_password_updated"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// State is the persisted shape of an authenticated session.
// Invariant: Token != "" iff the session is authenticated; Roles is empty
// when unauthenticated.
type State struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
	Roles []Role `json:"roles"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	if err := core.Validate.Struct(c); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// SetPassword is the forced/voluntary password rotation payload.
// UserName and UserEmail are not submitted; they feed the local
// similarity check before the request goes out.
type SetPassword struct {
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirmation" validate:"required,eqfield=Password"`

	UserName  string `json:"-"`
	UserEmail string `json:"-"`
}

func (sp SetPassword) Validate() error {
	if err := core.Validate.Struct(sp); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// ResetPassword completes an emailed password-reset flow.
type ResetPassword struct {
	Email           string `json:"email" validate:"required,email"`
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

func (rp *ResetPassword) Validate() error {
	rp.Email = core.CleanString(rp.Email, true /* lower */)
	if err := core.Validate.Struct(rp); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// LoginData is what a successful login returns.
type LoginData struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
	Roles       []Role `json:"roles"`
}

// ProfileData is what the auth-user endpoint returns. Roles may be absent.
type ProfileData struct {
	User  User   `json:"user"`
	Roles []Role `json:"roles,omitempty"`
}

// TokenData carries a rotated bearer token.
type TokenData struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// LoginResult tells the caller where to send the user next.
type LoginResult struct {
	NeedsPasswordChange bool
}
