package session

import (
	"sync"

	"github.com/jrsteele09/courier-admin/internal/errors"
)

// InMemoryStore keeps the credential for the lifetime of the process only.
type InMemoryStore struct {
	mu   sync.RWMutex
	cred *Credential
}

var _ Store = (*InMemoryStore)(nil)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Load() (Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cred == nil {
		return Credential{}, errors.ErrSessionNotFound
	}
	return *s.cred, nil
}

func (s *InMemoryStore) Save(cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Keep a copy so callers cannot modify the stored credential
	c := cred
	s.cred = &c
	return nil
}

func (s *InMemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = nil
	return nil
}
