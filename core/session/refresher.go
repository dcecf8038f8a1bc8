package session

import (
	"context"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/SatuPadu/fses-client/core"
)

var nowFunc = time.Now // mockable

// Refresher keeps a live session's token fresh in the background. It watches
// the store: the timer starts on login (or at Start when already
// authenticated) and is torn down on logout so no interval is left calling
// into a cleared session.
type Refresher struct {
	store    *Store
	interval time.Duration
	leeway   time.Duration
	log      core.Logger

	mu           sync.Mutex
	stopCh       chan struct{}
	disposeWatch func()
}

func NewRefresher(store *Store, conf *core.Config, log core.Logger) *Refresher {
	return &Refresher{
		store:    store,
		interval: conf.Session.RefreshInterval,
		leeway:   conf.Session.RefreshLeeway,
		log:      log,
	}
}

// Start subscribes to the store and arms the timer if a session is live.
func (r *Refresher) Start() {
	r.mu.Lock()
	if r.disposeWatch == nil {
		r.disposeWatch = r.store.Watch(func(ev Event) {
			switch ev {
			case EventLogin:
				r.arm()
			case EventLogout:
				r.disarm()
			}
		})
	}
	r.mu.Unlock()

	if r.store.IsAuthenticated() {
		r.arm()
	}
}

// Stop tears down the timer and the store subscription.
func (r *Refresher) Stop() {
	r.disarm()
	r.mu.Lock()
	if r.disposeWatch != nil {
		r.disposeWatch()
		r.disposeWatch = nil
	}
	r.mu.Unlock()
}

func (r *Refresher) arm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopCh != nil {
		return // already running
	}
	stop := make(chan struct{})
	r.stopCh = stop
	go r.run(stop)
}

func (r *Refresher) disarm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopCh != nil {
		close(r.stopCh)
		r.stopCh = nil
	}
}

func (r *Refresher) run(stop <-chan struct{}) {
	ticker := time.NewTicker(r.tickInterval())
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !r.store.IsAuthenticated() {
				return
			}
			if !r.store.RefreshToken(context.Background()) {
				r.log.Debug("session: background refresh skipped or failed")
			}
			ticker.Reset(r.tickInterval())
		}
	}
}

// tickInterval shortens the cadence when the token expires before the next
// regular tick, so expiry is never slept through.
func (r *Refresher) tickInterval() time.Duration {
	next := r.interval
	if exp, ok := TokenExpiry(r.store.Token()); ok {
		if until := exp.Sub(nowFunc()) - r.leeway; until > 0 && until < next {
			next = until
		}
	}
	if next <= 0 {
		next = time.Second
	}
	return next
}

// TokenExpiry peeks at the token's exp claim without verifying the
// signature; the client never verifies tokens, the backend does.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0), true
}
