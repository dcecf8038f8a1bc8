// Package state persists the authenticated session between runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/SatuPadu/fses-client/core/session"
)

// File stores the session state as a JSON document on disk. A missing
// or unreadable file yields an empty state rather than an error so a
// fresh install starts logged out.
type File struct {
	path string
	mu   sync.Mutex
}

var _ session.Storage = (*File)(nil)

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Load() (*session.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return &session.State{}, nil
	}
	var st session.State
	if err := json.Unmarshal(data, &st); err != nil {
		// corrupt state is discarded, not fatal
		return &session.State{}, nil
	}
	return &st, nil
}

func (f *File) Save(st session.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(err, "creating state dir")
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding state")
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "writing state")
	}
	return errors.Wrap(os.Rename(tmp, f.path), "writing state")
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clearing state")
	}
	return nil
}

// Memory keeps the state in process memory only. Used in tests and
// when persistence is disabled.
type Memory struct {
	mu sync.Mutex
	st *session.State
}

var _ session.Storage = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load() (*session.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.st == nil {
		return &session.State{}, nil
	}
	cp := *m.st
	return &cp, nil
}

func (m *Memory) Save(st session.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st = &st
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st = nil
	return nil
}
