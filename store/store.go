package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jsphweid/dosrevive/model"
)

// Store keeps decoded charts for the lifetime of the server. Charts are
// treated as read-only once stored.
type Store struct {
	mu     sync.RWMutex
	charts map[string]*model.Chart
}

func New() *Store {
	return &Store{charts: make(map[string]*model.Chart)}
}

func (s *Store) Add(chart *model.Chart) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.charts[id] = chart
	s.mu.Unlock()
	return id
}

func (s *Store) Get(id string) (*model.Chart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chart, ok := s.charts[id]
	return chart, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.charts)
}
