// Package memory is an in-memory snapshot sink for tests and dry runs.
package memory

import (
	"context"
	"sync"

	"rendiconto/internal/categorize"
	"rendiconto/internal/core"
	"rendiconto/internal/sheets"
)

type Store struct {
	mu         sync.Mutex
	cat        categorize.Categorizer
	grid       [][]any
	overwrites int
}

var _ sheets.SnapshotWriter = (*Store)(nil)

func New(cat categorize.Categorizer) *Store {
	return &Store{cat: cat}
}

func (s *Store) Overwrite(_ context.Context, snap *core.ReportSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = sheets.BuildGrid(snap, s.cat)
	s.overwrites++
	return nil
}

// Grid returns the last written cell grid, or nil before the first write.
func (s *Store) Grid() [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

// Overwrites reports how many times Overwrite was called.
func (s *Store) Overwrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overwrites
}
