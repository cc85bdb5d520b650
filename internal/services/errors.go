// internal/services/errors.go
package services

import "errors"

// Sentinel errors let handlers distinguish an absent row or a business
// conflict from a real storage failure.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUsernameTaken   = errors.New("username already taken")
)
