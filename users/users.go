package users

import (
	"fmt"
	"time"
	"unicode"

	"github.com/jrsteele09/courier-admin/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a console role
type RoleType string

const (
	RoleManager RoleType = "manager" // Can manage the catalog and couriers
)

// User is a local console account. Couriers sign in with their courier record instead.
type User struct {
	ID           string     `json:"id,omitempty"`          // Unique identifier for the user
	Username     string     `json:"username,omitempty"`    // Unique login name
	PasswordHash string     `json:"-"`                     // Hashed version of the user's password - never serialize
	Roles        []RoleType `json:"roles,omitempty"`       // Console roles
	DateJoined   time.Time  `json:"date_joined,omitempty"` // Date and time the account was created
	LastLogin    time.Time  `json:"last_login,omitempty"`  // Last time the user logged in
	Blocked      bool       `json:"blocked,omitempty"`     // Blocked, has the user been blocked from logging in
}

func (u *User) HasRole(role RoleType) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsManager() bool {
	return u.HasRole(RoleManager)
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains letters and at least one number
//
// Failures wrap errors.ErrWeakPassword.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.Wrapf(errors.ErrWeakPassword, "password must be at least 8 characters long")
	}

	var (
		hasLetter bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasLetter {
		return errors.Wrapf(errors.ErrWeakPassword, "password must contain at least one letter")
	}
	if !hasNumber {
		return errors.Wrapf(errors.ErrWeakPassword, "password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword checks a password against the user's stored hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

// NewManager builds a manager account with a hashed password.
func NewManager(id, username, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[users NewManager] hash password: %w", err)
	}
	return &User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		Roles:        []RoleType{RoleManager},
	}, nil
}
