package token

import (
	"sync"
	"time"
)

// SignedOutList holds the ids of tokens whose sessions were closed before they expired.
// Entries only need to live until the token's own expiry; after that the signature check
// rejects the token anyway.
type SignedOutList interface {
	SignOut(jti string, exp time.Time)
	IsRevoked(jti string) bool
	Prune(now time.Time) int
}

type InMemorySignedOutList struct {
	lock    sync.RWMutex
	expires map[string]time.Time
}

func NewInMemorySignedOutList() *InMemorySignedOutList {
	return &InMemorySignedOutList{expires: make(map[string]time.Time)}
}

func (l *InMemorySignedOutList) SignOut(jti string, exp time.Time) {
	if jti == "" {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.expires[jti] = exp
}

func (l *InMemorySignedOutList) IsRevoked(jti string) bool {
	l.lock.RLock()
	defer l.lock.RUnlock()
	_, ok := l.expires[jti]
	return ok
}

// Prune drops entries whose tokens have expired and reports how many went.
func (l *InMemorySignedOutList) Prune(now time.Time) int {
	l.lock.Lock()
	defer l.lock.Unlock()
	pruned := 0
	for jti, exp := range l.expires {
		if now.After(exp) {
			delete(l.expires, jti)
			pruned++
		}
	}
	return pruned
}
