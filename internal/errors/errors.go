package errors

import (
	"errors"
	"fmt"
)

// Common error types for the courier admin console
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrWeakPassword       = errors.New("password too weak")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Resource errors
	ErrParentNotFound = errors.New("parent resource not found")
	ErrRemote         = errors.New("remote api request failed")

	// Image errors
	ErrNotAnImage           = errors.New("file must be an image")
	ErrImageTooLarge        = errors.New("image must not exceed 5MB")
	ErrUnsupportedImageType = errors.New("only JPEG, PNG and WebP images are supported")

	// General errors
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnsupported    = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
