// Package auth registers users and verifies their passwords.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"TravelPlanner_WebProject/internal/models"
	"TravelPlanner_WebProject/internal/storage"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrMissingField       = fmt.Errorf("%w: all fields are required", ErrValidation)
	ErrPasswordMismatch   = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrPasswordTooLong    = fmt.Errorf("%w: password exceeds 72 bytes", ErrValidation)
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateName      = errors.New("name already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStorage is the persistence the credential store needs.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// RegisterInput is the registration form as submitted.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// CredentialStore hashes passwords with bcrypt and checks them on login.
type CredentialStore struct {
	users UserStorage
	cost  int
}

// Option configures a CredentialStore.
type Option func(*CredentialStore)

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *CredentialStore) {
		s.cost = cost
	}
}

func NewCredentialStore(users UserStorage, opts ...Option) *CredentialStore {
	s := &CredentialStore{
		users: users,
		cost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates the input, hashes the password and stores the user.
func (s *CredentialStore) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" || email == "" || in.Password == "" || in.PasswordConfirm == "" {
		return nil, ErrMissingField
	}
	if in.Password != in.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	if len(in.Password) > 72 {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(name, email, string(hash))
	if err := s.users.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrEmailExists):
			return nil, ErrDuplicateEmail
		case errors.Is(err, storage.ErrNameExists):
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Verify returns the user whose email and password match. Unknown email and
// wrong password both yield ErrInvalidCredentials.
func (s *CredentialStore) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
