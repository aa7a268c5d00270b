package logic

import (
	"sync"

	"mathtimeline/internal/domain"
)

// MemoryEntityStore is an in-memory implementation of EntityStore.
// It keeps load order alongside an id index.
type MemoryEntityStore struct {
	mu       sync.RWMutex
	entities []domain.Entity
	byID     map[domain.ID]int
}

// NewMemoryEntityStore creates an empty store
func NewMemoryEntityStore() *MemoryEntityStore {
	return &MemoryEntityStore{
		byID: make(map[domain.ID]int),
	}
}

func (s *MemoryEntityStore) All() []domain.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	out := make([]domain.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

func (s *MemoryEntityStore) Get(id domain.ID) (domain.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.entities[i], true
}

func (s *MemoryEntityStore) Has(id domain.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

func (s *MemoryEntityStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Replace swaps the store contents. A later duplicate id shadows an earlier one
// in the index; the loader rejects duplicates before they get here.
func (s *MemoryEntityStore) Replace(entities []domain.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities = make([]domain.Entity, len(entities))
	copy(s.entities, entities)
	s.byID = make(map[domain.ID]int, len(entities))
	for i, e := range s.entities {
		s.byID[e.EntityID()] = i
	}
}
