// Package session holds the in-memory state of analyzed batches. State is
// explicit and per-store; there are no ambient globals, and reset discards a
// batch's documents and results wholesale.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-analyzer/internal/present"
)

// Batch is one analyzed upload batch: its identity, when it was analyzed,
// and the computed presentation view.
type Batch struct {
	ID        uuid.UUID
	CreatedAt time.Time
	View      *present.AnalysisView
}

// Summary is the listing row for a stored batch.
type Summary struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	CandidateCount int       `json:"candidate_count"`
}

// Store is a thread-safe in-memory batch store.
type Store struct {
	mu      sync.RWMutex
	batches map[uuid.UUID]*Batch
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{batches: make(map[uuid.UUID]*Batch)}
}

// Put stores a batch, replacing any previous batch with the same ID.
func (s *Store) Put(batch *Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batch.ID] = batch
}

// Get returns the batch with the given ID, or false when unknown.
func (s *Store) Get(id uuid.UUID) (*Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.batches[id]
	return batch, ok
}

// Delete removes one batch and reports whether it existed. This is the reset
// action for a single batch: documents were already discarded after
// extraction, so dropping the batch removes all remaining state.
func (s *Store) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.batches[id]
	delete(s.batches, id)
	return ok
}

// Clear discards every stored batch, returning the store to its initial
// empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = make(map[uuid.UUID]*Batch)
}

// Len returns the number of stored batches.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.batches)
}

// List returns summaries of all stored batches, newest first.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, 0, len(s.batches))
	for _, batch := range s.batches {
		summaries = append(summaries, Summary{
			ID:             batch.ID,
			CreatedAt:      batch.CreatedAt,
			CandidateCount: len(batch.View.Candidates),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries
}
