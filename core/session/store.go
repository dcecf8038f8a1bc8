package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/SatuPadu/fses-client/core"
)

// Event signals a session boundary to watchers.
type Event int

const (
	EventLogin Event = iota
	EventLogout
	EventRefresh
)

// Store holds the current authenticated identity: bearer token, user and
// assigned roles. It is a process-wide singleton; all mutation goes through
// its methods. Async completions racing a logout are discarded by an epoch
// check so a stale fetch can never resurrect cleared state.
type Store struct {
	api     AuthAPI
	storage Storage
	log     core.Logger

	mu    sync.RWMutex
	epoch uint64
	state State

	watchMu   sync.Mutex
	watchers  map[int]func(Event)
	nextWatch int
}

// NewStore restores any persisted state immediately, without a network
// call; the restored token is only validated once InitAuth runs.
func NewStore(api AuthAPI, storage Storage, log core.Logger) *Store {
	s := &Store{
		api:      api,
		storage:  storage,
		log:      log,
		watchers: make(map[int]func(Event)),
	}
	if st, err := storage.Load(); err != nil {
		log.Warn("session: restoring persisted state", err)
	} else if st != nil && st.Token != "" {
		s.state = *st
	}
	return s
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	usr := *s.state.User
	return &usr
}

func (s *Store) Roles() []Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]Role, len(s.state.Roles))
	copy(roles, s.state.Roles)
	return roles
}

func (s *Store) IsAuthenticated() bool { return s.Token() != "" }

// NeedsPasswordChange reports whether the forced password-change gate is due.
// A token with no profile yet counts as due; the gate only clears once a
// fetched user confirms is_password_updated.
func (s *Store) NeedsPasswordChange() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Token == "" {
		return false
	}
	return s.state.User == nil || !s.state.User.IsPasswordUpdated
}

// Login authenticates against the backend. Nothing is stored on failure.
func (s *Store) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return LoginResult{}, err
	}

	data, err := s.api.Login(ctx, creds)
	if err != nil {
		return LoginResult{}, err
	}

	s.mu.Lock()
	s.epoch++
	s.state = State{
		Token: data.AccessToken,
		User:  &data.User,
		Roles: data.Roles,
	}
	s.warnEmptyRoles(data.Roles)
	s.persistLocked()
	s.mu.Unlock()

	s.notify(EventLogin)
	return LoginResult{NeedsPasswordChange: !data.User.IsPasswordUpdated}, nil
}

// Logout clears the session unconditionally. The backend call is
// best-effort: its failure is logged and ignored. Safe to call repeatedly.
func (s *Store) Logout(ctx context.Context) {
	if token := s.Token(); token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			s.log.Debug("session: backend logout", err)
		}
	}

	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()

	s.notify(EventLogout)
}

// FetchUserProfile refetches the user (and roles, when the backend includes
// them). A no-op when unauthenticated. A 401 clears the entire session so
// state is never left half-populated.
func (s *Store) FetchUserProfile(ctx context.Context) (*User, error) {
	s.mu.RLock()
	token, epoch := s.state.Token, s.epoch
	s.mu.RUnlock()
	if token == "" {
		return nil, nil
	}

	data, err := s.api.FetchAuthUser(ctx, token)
	if err != nil {
		if IsUnauthorized(err) {
			s.mu.Lock()
			live := s.epoch == epoch
			if live {
				s.clearLocked()
			}
			s.mu.Unlock()
			// a stale 401 must not announce a logout the live session
			// never had
			if live {
				s.notify(EventLogout)
			}
			return nil, nil
		}
		return nil, errors.Wrap(err, "fetching user profile")
	}

	s.mu.Lock()
	if s.epoch != epoch || s.state.Token != token {
		// session changed while the request was in flight
		s.mu.Unlock()
		return nil, nil
	}
	usr := data.User
	s.state.User = &usr
	rolesReplaced := data.Roles != nil
	if rolesReplaced {
		s.state.Roles = data.Roles
		s.warnEmptyRoles(data.Roles)
	}
	s.persistLocked()
	s.mu.Unlock()

	// replaced roles are a boundary: watchers re-derive permissions from them
	if rolesReplaced {
		s.notify(EventRefresh)
	}
	return &usr, nil
}

// RefreshToken exchanges the current token for a new one. On failure the
// existing token is left untouched and false is returned; the caller
// decides whether that warrants a forced logout.
func (s *Store) RefreshToken(ctx context.Context) bool {
	s.mu.RLock()
	token, epoch := s.state.Token, s.epoch
	s.mu.RUnlock()
	if token == "" {
		return false
	}

	data, err := s.api.Refresh(ctx, token)
	if err != nil || data.AccessToken == "" {
		s.log.Debug("session: token refresh failed", err)
		return false
	}

	s.mu.Lock()
	if s.epoch != epoch || s.state.Token != token {
		s.mu.Unlock()
		return false
	}
	s.state.Token = data.AccessToken
	s.persistLocked()
	s.mu.Unlock()

	s.notify(EventRefresh)
	return true
}

// ChangePassword rotates the password and, with it, the bearer token.
func (s *Store) ChangePassword(ctx context.Context, payload SetPassword) error {
	s.mu.RLock()
	token, epoch := s.state.Token, s.epoch
	if s.state.User != nil {
		payload.UserName = s.state.User.Name
		payload.UserEmail = s.state.User.Email
	}
	s.mu.RUnlock()
	if token == "" {
		return ErrNotAuthenticated
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	data, err := s.api.SetNewPassword(ctx, token, payload)
	if err != nil {
		return err
	}
	if data.AccessToken == "" {
		return errors.New("invalid response from server")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return nil
	}
	s.state.Token = data.AccessToken
	if s.state.User != nil {
		usr := *s.state.User
		usr.IsPasswordUpdated = true
		s.state.User = &usr
	}
	s.persistLocked()
	return nil
}

// ResetPassword completes an emailed reset flow; no session is required.
func (s *Store) ResetPassword(ctx context.Context, payload ResetPassword) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", err
	}
	return s.api.ResetPassword(ctx, payload)
}

// SendResetLink requests a password-reset email.
func (s *Store) SendResetLink(ctx context.Context, email string) (string, error) {
	email = core.CleanString(email, true /* lower */)
	if email == "" {
		return "", core.NewValidationError(errors.New("email is required"),
			core.FieldError{Field: "email", Error: "this field is required"})
	}
	return s.api.SendResetLink(ctx, email)
}

// InitAuth validates a token restored from storage at startup. An
// invalid/expired token makes the session self-clear via FetchUserProfile.
func (s *Store) InitAuth(ctx context.Context) {
	if s.IsAuthenticated() {
		if _, err := s.FetchUserProfile(ctx); err != nil {
			s.log.Warn("session: validating restored token", err)
		}
	}
}

// ForceLogout clears the session without the best-effort backend call.
// Used when the backend already told us the token is dead.
func (s *Store) ForceLogout(ctx context.Context) {
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()
	s.notify(EventLogout)
}

// Watch subscribes to session boundary events. The returned disposer must
// be invoked on teardown; callbacks run outside the store lock.
func (s *Store) Watch(fn func(Event)) (dispose func()) {
	s.watchMu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = fn
	s.watchMu.Unlock()
	return func() {
		s.watchMu.Lock()
		delete(s.watchers, id)
		s.watchMu.Unlock()
	}
}

func (s *Store) notify(ev Event) {
	s.watchMu.Lock()
	fns := make([]func(Event), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.watchMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Store) clearLocked() {
	s.epoch++
	s.state = State{}
	if err := s.storage.Clear(); err != nil {
		s.log.Warn("session: clearing persisted state", err)
	}
}

func (s *Store) persistLocked() {
	if err := s.storage.Save(s.state); err != nil {
		s.log.Warn("session: persisting state", err)
	}
}

func (s *Store) warnEmptyRoles(roles []Role) {
	for _, role := range roles {
		if role.Permissions.IsEmpty() {
			s.log.Warn("session: role carries no usable permissions", map[string]interface{}{"role": role.RoleName})
		}
	}
}
