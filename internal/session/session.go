// Package session tracks each user's in-progress wizard context.
package session

import (
	"sync"

	"github.com/dvloznov/finance-bot/internal/domain"
)

// Context is one user's accumulated wizard selections. The zero value is a
// fresh session. LastDate is the only field expected to outlive a flow: it
// is kept as a shortcut until the session itself is removed or reset.
type Context struct {
	Tipo         domain.Tipo
	EntrySource  string
	Categoria    string
	Subcategoria string
	Pagamento    string

	// ChosenDate is a date fixed by a quick action or accepted suggestion,
	// waiting for the amount. LastDate is the most recent date this user
	// submitted with. Both canonical YYYY-MM-DD.
	ChosenDate string
	LastDate   string
}

// SetTipo records the transaction direction and clears every downstream
// choice, since a direction change invalidates them.
func (c *Context) SetTipo(tipo domain.Tipo) {
	c.Tipo = tipo
	c.EntrySource = ""
	c.Categoria = ""
	c.Subcategoria = ""
	c.Pagamento = ""
}

// Store maps user IDs to wizard contexts. It is an in-memory map with no
// expiry: sessions are removed when a flow completes, and an abandoned flow
// costs one map entry until the same user starts a new one. The mutex
// protects the map structure; same-key mutation is serialized by the
// platform's one-interaction-at-a-time delivery.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Context
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]Context)}
}

// Get returns the user's context, or a zero-value context when none exists.
func (s *Store) Get(userID string) Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[userID]
}

// Put saves or replaces the user's context.
func (s *Store) Put(userID string, ctx Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = ctx
}

// Remove deletes the user's context entirely.
func (s *Store) Remove(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len reports the number of live sessions, for operator visibility.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
