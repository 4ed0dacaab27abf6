// Package auth provides password hashing and signed identity tokens for menuboard.
//
// # Passwords
//
// Passwords are stored as bcrypt hashes with DefaultBcryptCost:
//
//	hash, err := auth.HashPassword("secret")
//	ok := auth.VerifyPassword("secret", hash)
//
// # Tokens
//
// Identity tokens are HS256 JWTs carrying {user_id, iat, exp}. The signing
// secret is loaded once at startup and injected:
//
//	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), auth.DefaultTokenTTL)
//	signed, err := tokens.Issue(user.UserID)
//	userID, err := tokens.Verify(signed)
//
// Verify returns ErrTokenExpired for an expired token and ErrInvalidToken for
// every other failure.
//
// # Related Packages
//
//   - pkg/middleware: HTTP gate built on TokenService
//   - pkg/users: credential store
package auth
