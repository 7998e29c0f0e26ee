package store

import (
	"context"
	"sync"
)

// InMemoryStore implements ProductStore by keeping the last saved collection in memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	products []Product
	saves    int
}

// NewInMemoryStore creates a new instance of ProductStore primed with the given products.
func NewInMemoryStore(products ...Product) *InMemoryStore {
	return &InMemoryStore{
		products: cloneProducts(products),
	}
}

// Load returns a copy of the last saved collection.
func (s *InMemoryStore) Load(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneProducts(s.products), nil
}

// Save replaces the stored collection with a copy of products.
func (s *InMemoryStore) Save(ctx context.Context, products []Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = cloneProducts(products)
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *InMemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
