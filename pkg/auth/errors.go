package auth

import "errors"

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and unexpected algorithms
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for a well-formed token past its exp claim
	ErrTokenExpired = errors.New("token expired")
	// ErrPasswordTooLong is returned for passwords bcrypt would reject
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)
