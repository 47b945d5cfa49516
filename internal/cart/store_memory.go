package cart

import (
	"context"
	"slices"
	"sync"
)

type MemStore struct {
	mu     sync.Mutex
	items  []Item
	nextID int64
}

func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemStore) Add(ctx context.Context, it Item) (Item, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it.ID = s.nextID
	s.nextID++
	s.items = append(s.items, it)
	return it, len(s.items), nil
}

func (s *MemStore) Remove(ctx context.Context, id int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
	if i < 0 {
		return len(s.items), ErrNotFound
	}
	s.items = slices.Delete(s.items, i, i+1)
	return len(s.items), nil
}

func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
