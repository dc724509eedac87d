// Package memory is an in-memory store used by tests and by local runs
// without a database file.
package memory

import (
	"context"
	"sort"
	"sync"

	"pedidos/internal/core"
	"pedidos/internal/store"
)

// Store keeps purchases and categories in maps guarded by a single mutex.
type Store struct {
	mu         sync.RWMutex
	purchases  map[string]core.Purchase
	categories map[string]core.Category
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		purchases:  make(map[string]core.Purchase),
		categories: make(map[string]core.Category),
	}
}

func (s *Store) CreatePurchase(_ context.Context, p core.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases[p.ID] = p
	return nil
}

func (s *Store) UpdatePurchase(_ context.Context, p core.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.purchases[p.ID]; !ok {
		return store.ErrNotFound
	}
	s.purchases[p.ID] = p
	return nil
}

func (s *Store) DeletePurchase(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.purchases[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.purchases, id)
	return nil
}

func (s *Store) GetPurchase(_ context.Context, id string) (core.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.purchases[id]
	if !ok {
		return core.Purchase{}, store.ErrNotFound
	}
	return p, nil
}

func (s *Store) ListPurchases(_ context.Context) ([]core.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Purchase, 0, len(s.purchases))
	for _, p := range s.purchases {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, c core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
	return nil
}

func (s *Store) UpdateCategory(_ context.Context, c core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return store.ErrNotFound
	}
	s.categories[c.ID] = c
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return store.ErrNotFound
	}
	if c.IsDefault {
		return store.ErrDefaultCategory
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *Store) EnsureDefaultCategories(_ context.Context, nowMillis int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.categories) > 0 {
		return nil
	}
	for _, c := range core.DefaultCategories(nowMillis) {
		s.categories[c.ID] = c
	}
	return nil
}

func (s *Store) Close() error { return nil }
