package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps items for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	items  []Item
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: []Item{}}
}

func (s *MemoryStore) Append(_ context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.items = append(s.items, item)
	return nil
}

func (s *MemoryStore) UpdateFirst(_ context.Context, id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Name = name
			return nil
		}
	}
	return fmt.Errorf("update %d: %w", id, ErrNotFound)
}

func (s *MemoryStore) RemoveAll(_ context.Context, id int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	removed := len(s.items) - len(kept)
	// clear the tail so dropped names are not pinned by the backing array
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = Item{}
	}
	s.items = kept
	return removed, nil
}

func (s *MemoryStore) Snapshot(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items, nil
}

func (s *MemoryStore) MaxID(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	var max int64
	for _, item := range s.items {
		if item.ID > max {
			max = item.ID
		}
	}
	return max, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.items = nil
	return nil
}
