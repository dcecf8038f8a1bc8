// Package notify keeps an ordered queue of user-facing messages with
// automatic expiry, decoupled from whatever surface renders them.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

const DefaultTimeout = 5 * time.Second

type Message struct {
	ID         uuid.UUID
	Kind       Kind
	Title      string
	Body       string
	Timeout    time.Duration
	Persistent bool
	CreatedAt  time.Time
}

// Queue holds pending messages in insertion order. Non-persistent
// messages remove themselves once their timeout elapses.
type Queue struct {
	mu       sync.Mutex
	messages []Message
	timers   map[uuid.UUID]*time.Timer
	watchers map[int]func()
	nextW    int

	nowFunc   func() time.Time
	afterFunc func(time.Duration, func()) *time.Timer
}

func NewQueue() *Queue {
	return &Queue{
		timers:    make(map[uuid.UUID]*time.Timer),
		watchers:  make(map[int]func()),
		nowFunc:   time.Now,
		afterFunc: time.AfterFunc,
	}
}

// Push enqueues msg and returns its assigned ID. Zero Timeout on a
// non-persistent message falls back to DefaultTimeout.
func (q *Queue) Push(msg Message) uuid.UUID {
	q.mu.Lock()
	msg.ID = uuid.New()
	msg.CreatedAt = q.nowFunc()
	if !msg.Persistent && msg.Timeout <= 0 {
		msg.Timeout = DefaultTimeout
	}
	q.messages = append(q.messages, msg)

	if !msg.Persistent {
		id := msg.ID
		q.timers[id] = q.afterFunc(msg.Timeout, func() { q.Dismiss(id) })
	}
	fns := q.watchersLocked()
	q.mu.Unlock()

	runWatchers(fns)
	return msg.ID
}

// Dismiss removes the message with the given ID. Unknown IDs are a no-op.
func (q *Queue) Dismiss(id uuid.UUID) {
	q.mu.Lock()
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	var fns []func()
	for i, m := range q.messages {
		if m.ID == id {
			q.messages = append(q.messages[:i], q.messages[i+1:]...)
			fns = q.watchersLocked()
			break
		}
	}
	q.mu.Unlock()

	runWatchers(fns)
}

// Clear drops every pending message and stops their timers.
func (q *Queue) Clear() {
	q.mu.Lock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	var fns []func()
	if len(q.messages) > 0 {
		q.messages = nil
		fns = q.watchersLocked()
	}
	q.mu.Unlock()

	runWatchers(fns)
}

// Messages returns a snapshot of the queue in insertion order.
func (q *Queue) Messages() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Message, len(q.messages))
	copy(out, q.messages)
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

// Watch registers fn to run after every queue change. The returned
// function removes the watcher.
func (q *Queue) Watch(fn func()) func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	id := q.nextW
	q.nextW++
	q.watchers[id] = fn
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.watchers, id)
	}
}

// watchersLocked snapshots the callbacks; they run after q.mu is
// released so a watcher may call back into the queue.
func (q *Queue) watchersLocked() []func() {
	fns := make([]func(), 0, len(q.watchers))
	for _, fn := range q.watchers {
		fns = append(fns, fn)
	}
	return fns
}

func runWatchers(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

func (q *Queue) Success(title, body string) uuid.UUID {
	return q.Push(Message{Kind: KindSuccess, Title: title, Body: body})
}

func (q *Queue) Error(title, body string) uuid.UUID {
	return q.Push(Message{Kind: KindError, Title: title, Body: body})
}

func (q *Queue) Warning(title, body string) uuid.UUID {
	return q.Push(Message{Kind: KindWarning, Title: title, Body: body})
}

func (q *Queue) Info(title, body string) uuid.UUID {
	return q.Push(Message{Kind: KindInfo, Title: title, Body: body})
}
