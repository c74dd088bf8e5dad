package users

import "time"

// UserRepo stores the local manager accounts.
type UserRepo interface {
	Upsert(user *User) error
	GetByUsername(username string) (*User, error)
	GetByID(ID string) (*User, error)
	SetLastLogin(username string, at time.Time) error
}
