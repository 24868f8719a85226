// Package memory is an in-memory mail source for tests and dry runs.
package memory

import (
	"context"
	"sync"
	"time"

	"rendiconto/internal/core"
)

// Source holds a fixed message list and filters it by the requested window.
// The query string is ignored; an inbox fixture is assumed to be pre-filtered.
type Source struct {
	mu       sync.Mutex
	messages []core.RawMessage
	searches int
}

func New(messages ...core.RawMessage) *Source {
	return &Source{messages: messages}
}

func (s *Source) Search(_ context.Context, _ string, after, before time.Time) ([]core.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches++

	var out []core.RawMessage
	for _, m := range s.messages {
		if m.ReceivedAt.Before(after) || !m.ReceivedAt.Before(before) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// Searches reports how many times Search was called.
func (s *Source) Searches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searches
}
