package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/platinummonkey/menuboard/pkg/auth"
)

// PostgreSQL SQLSTATEs mapped to domain errors
const (
	uniqueViolation           = "23505"
	stringDataRightTruncation = "22001"
)

// Service is the credential store
type Service interface {
	CreateUser(ctx context.Context, username, email, password string) (*auth.User, error)
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	Authenticate(ctx context.Context, email, password string) (*auth.User, error)
}

// PostgresService implements Service using PostgreSQL
type PostgresService struct {
	db *sql.DB
}

// NewPostgresService creates a new PostgresService
func NewPostgresService(db *sql.DB) *PostgresService {
	return &PostgresService{db: db}
}

// CreateUser hashes password and stores a new user.
// A duplicate email returns ErrEmailTaken; a password bcrypt cannot hash
// returns ErrInvalidPassword.
func (s *PostgresService) CreateUser(ctx context.Context, username, email, password string) (*auth.User, error) {
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPassword, err)
	}
	if err != nil {
		return nil, err
	}

	user := &auth.User{
		Username:     username,
		Email:        normalizeEmail(email),
		PasswordHash: hash,
	}

	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING user_id
	`
	err = s.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).Scan(&user.UserID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch string(pqErr.Code) {
			case uniqueViolation:
				return nil, ErrEmailTaken
			case stringDataRightTruncation:
				return nil, ErrInvalidInput
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// FindByEmail looks a user up by email
func (s *PostgresService) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT user_id, username, email, password
		FROM users
		WHERE email = $1
	`
	user := &auth.User{}
	err := s.db.QueryRowContext(ctx, query, normalizeEmail(email)).
		Scan(&user.UserID, &user.Username, &user.Email, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user when password matches the stored hash.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *PostgresService) Authenticate(ctx context.Context, email, password string) (*auth.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
