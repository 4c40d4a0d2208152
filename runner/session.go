package runner

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	ai "github.com/zootherapy/menagerie"
)

// Session is the in-memory history of one conversation.
// It is safe for concurrent use, though turns on one session should be
// issued one at a time to keep the history coherent.
type Session struct {
	id string

	mu      sync.RWMutex
	history []ai.Message
	usage   ai.Usage
}

// NewSession creates an empty session with a fresh ID.
func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

// ID returns the session identifier passed to every capability invocation.
func (s *Session) ID() string {
	return s.id
}

// Messages returns a copy of the conversation history. System instructions
// are not part of the history.
func (s *Session) Messages() []ai.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.history)
}

// Len returns the number of messages in the history.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Usage returns the token usage accumulated over all turns.
func (s *Session) Usage() ai.Usage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usage
}

// Reset clears the history and usage, keeping the ID.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.usage = ai.Usage{}
}

func (s *Session) commit(msgs []ai.Message, usage ai.Usage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msgs...)
	s.usage = s.usage.Add(usage)
}
