// Package session holds the per-analyst mutable state of a dashboard
// session: the latest workflow summary. The store is single-writer (the
// sequencer) and read-only to the rendering layer; summaries are published
// wholesale so readers never observe a partial update.
package session

import (
	"sync"

	"github.com/abenson/pbbdash/internal/workflow"
)

// Store is the session-scoped summary store. The zero value is unusable;
// create one with NewStore.
type Store struct {
	mu      sync.RWMutex
	summary workflow.Summary
	present bool
	runs    uint64
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the stored summary with a single assignment. Each new run
// overwrites the previous summary.
func (s *Store) Publish(summary workflow.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
	s.present = true
	s.runs++
}

// Latest returns the most recent summary and whether one exists.
func (s *Store) Latest() (workflow.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary, s.present
}

// Runs returns how many summaries have been published this session.
func (s *Store) Runs() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs
}

// Clear discards the stored summary.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = workflow.Summary{}
	s.present = false
}
