package cart

import (
	"fmt"
	"sync"
)

// Store holds per-session carts in memory. Carts are transient state: they
// live only as long as the process and are never persisted.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		carts: make(map[string][]Item),
	}
}

// Get returns a copy of the cart for the given session.
func (s *Store) Get(sessionID string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.carts[sessionID]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Add appends a line item to the session's cart.
func (s *Store) Add(sessionID string, item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[sessionID] = append(s.carts[sessionID], item)
}

// Remove deletes the line item at the given position.
func (s *Store) Remove(sessionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[sessionID]
	if index < 0 || index >= len(items) {
		return fmt.Errorf("cart index out of range: %d", index)
	}

	s.carts[sessionID] = append(items[:index], items[index+1:]...)
	return nil
}

// Clear empties the session's cart.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}
