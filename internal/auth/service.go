package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"catalogapi/internal/entity"
	"catalogapi/internal/usecase"
)

var (
	// ErrWrongCredentials is returned for a failed login. An unknown
	// username and a wrong password produce this same error so a caller
	// cannot probe which usernames exist.
	ErrWrongCredentials = errors.New("wrong credentials")
	// ErrInvalidToken is returned when a bearer credential was supplied
	// but failed signature or expiry checks.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrSubjectNotFound is returned when a valid token names a user that
	// no longer exists.
	ErrSubjectNotFound = errors.New("subject not found")
)

const bearerScheme = "bearer "

// Service issues tokens at login and resolves bearer credentials back to
// users on every request.
type Service struct {
	secret string
	ttl    time.Duration
	users  usecase.UserRepository
}

func NewService(secret string, ttl time.Duration, users usecase.UserRepository) *Service {
	return &Service{secret: secret, ttl: ttl, users: users}
}

// Login verifies the username/password pair and issues a signed token
// embedding the user's id and username.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || !VerifyPassword(user.PasswordHash, password) {
		return "", ErrWrongCredentials
	}
	return GenerateToken(s.secret, user.ID, user.Username, s.ttl)
}

// Resolve turns the raw Authorization header value into the current user.
// An empty header resolves to (nil, nil): anonymous, never an error. A
// header that is present but malformed, unsigned, or expired is a hard
// failure. The bearer scheme is matched case-insensitively.
func (s *Service) Resolve(ctx context.Context, authorization string) (*entity.User, error) {
	if authorization == "" {
		return nil, nil
	}
	if len(authorization) <= len(bearerScheme) ||
		!strings.EqualFold(authorization[:len(bearerScheme)], bearerScheme) {
		return nil, ErrInvalidToken
	}

	claims, err := ParseToken(s.secret, authorization[len(bearerScheme):])
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.Sub)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return &user, nil
}
