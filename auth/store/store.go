package store

import (
	"sync"

	"golang.org/x/oauth2"
)

// TokenKey identifies a token issued for a user by a user pool app client
type TokenKey struct {
	UserPoolID string
	ClientID   string
	Username   string
}

// Store is a pluggable persistence layer for session tokens.
type Store interface {
	AddToken(key TokenKey, token *oauth2.Token) error
	LookupToken(key TokenKey) (*oauth2.Token, bool)
	RemoveToken(key TokenKey) error
}

type memoryStore struct {
	mu     sync.RWMutex
	tokens map[TokenKey]*oauth2.Token
}

func (m *memoryStore) LookupToken(key TokenKey) (*oauth2.Token, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tokens != nil {
		if token, ok := m.tokens[key]; ok {
			return token, true
		}
	}
	return nil, false
}

func (m *memoryStore) AddToken(key TokenKey, token *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = map[TokenKey]*oauth2.Token{}
	}
	m.tokens[key] = token
	return nil
}

func (m *memoryStore) RemoveToken(key TokenKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, key)
	return nil
}

// NewMemoryStore creates in memory store
func NewMemoryStore() Store {
	return &memoryStore{tokens: map[TokenKey]*oauth2.Token{}}
}
