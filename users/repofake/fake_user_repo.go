package fakeuserrepo

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/jrsteele09/courier-admin/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo keeps manager accounts in memory. Users go in and come out as copies, so
// callers never share the stored record.
type FakeUserRepo struct {
	users       map[string]users.User
	usernameIds map[string]string // lower-cased username to user id
	lock        sync.RWMutex
}

func NewFakeUserRepo() users.UserRepo {
	return &FakeUserRepo{
		users:       make(map[string]users.User),
		usernameIds: make(map[string]string),
	}
}

func usernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func copyUser(u users.User) *users.User {
	u.Roles = slices.Clone(u.Roles)
	return &u
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	if user == nil || strings.TrimSpace(user.Username) == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "[FakeUserRepo.Upsert] username is required")
	}

	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}
	key := usernameKey(user.Username)
	if owner, ok := ur.usernameIds[key]; ok && owner != user.ID {
		return errors.Wrapf(errors.ErrInvalidRequest, "[FakeUserRepo.Upsert] username %q is taken", user.Username)
	}
	if prev, ok := ur.users[user.ID]; ok {
		delete(ur.usernameIds, usernameKey(prev.Username))
	}
	ur.users[user.ID] = *copyUser(*user)
	ur.usernameIds[key] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByUsername(username string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.usernameIds[usernameKey(username)]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return copyUser(ur.users[id]), nil
}

func (ur *FakeUserRepo) GetByID(id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return copyUser(user), nil
}

func (ur *FakeUserRepo) SetLastLogin(username string, at time.Time) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	id, ok := ur.usernameIds[usernameKey(username)]
	if !ok {
		return errors.ErrNotFound
	}
	user := ur.users[id]
	user.LastLogin = at
	ur.users[id] = user
	return nil
}
