package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileState records which parameter file, if any, the running session was
// loaded from.
type FileState struct {
	FileFlag bool
	FileName string
}

// Session is the process-wide session object. The startup controller is its
// only writer; UI refresh code reads it through State.
type Session struct {
	mu       sync.RWMutex
	id       string
	started  time.Time
	state    FileState
	loadedAt time.Time
}

// New creates a session with a fresh identifier.
func New() *Session {
	return &Session{
		id:      uuid.New().String(),
		started: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Started returns when the session was created.
func (s *Session) Started() time.Time {
	return s.started
}

// State returns a copy of the current file state.
func (s *Session) State() FileState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LoadedAt returns when the current file was loaded, zero if none.
func (s *Session) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// MarkLoaded records that path was loaded successfully.
func (s *Session) MarkLoaded(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = FileState{FileFlag: true, FileName: path}
	s.loadedAt = time.Now()
}
