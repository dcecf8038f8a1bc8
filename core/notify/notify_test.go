package notify

import (
	"testing"
	"time"
)

// manualClock captures timer callbacks so tests fire expiry by hand.
type manualClock struct {
	callbacks []func()
}

func (m *manualClock) afterFunc(d time.Duration, fn func()) *time.Timer {
	m.callbacks = append(m.callbacks, fn)
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}

func newManualQueue() (*Queue, *manualClock) {
	q := NewQueue()
	clock := &manualClock{}
	q.afterFunc = clock.afterFunc
	return q, clock
}

func TestQueue_ordering(t *testing.T) {
	q, _ := newManualQueue()

	q.Success("Success", "first")
	q.Error("Error", "second")
	q.Info("Info", "third")

	msgs := q.Messages()
	if len(msgs) != 3 {
		t.Fatalf("Len() = %d, want 3", len(msgs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if msgs[i].Body != want {
			t.Errorf("messages[%d].Body = %q, want %q", i, msgs[i].Body, want)
		}
	}
	if msgs[0].Kind != KindSuccess || msgs[1].Kind != KindError {
		t.Errorf("kinds = %v, %v", msgs[0].Kind, msgs[1].Kind)
	}
}

func TestQueue_expiry(t *testing.T) {
	q, clock := newManualQueue()

	q.Push(Message{Kind: KindInfo, Body: "ephemeral"})
	keep := q.Push(Message{Kind: KindError, Body: "sticky", Persistent: true})

	if got := len(clock.callbacks); got != 1 {
		t.Fatalf("armed timers = %d, want 1 (persistent messages have none)", got)
	}

	clock.callbacks[0]()
	msgs := q.Messages()
	if len(msgs) != 1 || msgs[0].ID != keep {
		t.Errorf("after expiry messages = %+v, want only the persistent one", msgs)
	}

	// late-firing timer for an already dismissed message is a no-op
	clock.callbacks[0]()
	if q.Len() != 1 {
		t.Errorf("Len() = %d after duplicate expiry", q.Len())
	}
}

func TestQueue_defaultTimeout(t *testing.T) {
	q, _ := newManualQueue()
	id := q.Push(Message{Kind: KindInfo, Body: "x"})
	msgs := q.Messages()
	if len(msgs) != 1 || msgs[0].ID != id {
		t.Fatalf("messages = %+v", msgs)
	}
	if msgs[0].Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", msgs[0].Timeout, DefaultTimeout)
	}
}

func TestQueue_dismissAndClear(t *testing.T) {
	q, _ := newManualQueue()
	first := q.Info("Info", "a")
	q.Info("Info", "b")

	q.Dismiss(first)
	if msgs := q.Messages(); len(msgs) != 1 || msgs[0].Body != "b" {
		t.Errorf("after Dismiss messages = %+v", msgs)
	}
	q.Dismiss(first) // unknown ID, no-op

	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len() = %d after Clear", q.Len())
	}
}

func TestQueue_watcherMayReenterQueue(t *testing.T) {
	q, _ := newManualQueue()

	// a renderer-style watcher reads the queue back on every change
	var lastLen int
	var lastBodies []string
	dispose := q.Watch(func() {
		lastLen = q.Len()
		lastBodies = lastBodies[:0]
		for _, m := range q.Messages() {
			lastBodies = append(lastBodies, m.Body)
		}
	})
	defer dispose()

	id := q.Info("Info", "a")
	if lastLen != 1 || len(lastBodies) != 1 || lastBodies[0] != "a" {
		t.Errorf("after Push watcher saw len=%d bodies=%v", lastLen, lastBodies)
	}

	q.Dismiss(id)
	if lastLen != 0 {
		t.Errorf("after Dismiss watcher saw len=%d, want 0", lastLen)
	}

	q.Info("Info", "b")
	q.Clear()
	if lastLen != 0 {
		t.Errorf("after Clear watcher saw len=%d, want 0", lastLen)
	}
}

func TestQueue_watch(t *testing.T) {
	q, _ := newManualQueue()
	var calls int
	dispose := q.Watch(func() { calls++ })

	id := q.Info("Info", "a")
	q.Dismiss(id)
	if calls != 2 {
		t.Errorf("watcher calls = %d, want 2", calls)
	}

	dispose()
	q.Info("Info", "b")
	if calls != 2 {
		t.Errorf("watcher calls = %d after dispose, want 2", calls)
	}
}
