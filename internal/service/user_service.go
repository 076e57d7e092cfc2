package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tubeshelf/internal/auth"
	"tubeshelf/internal/domain"
	"tubeshelf/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when registering with a taken
	// username or email.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserService describes account lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// DeleteAccount hard-deletes the user and every playlist and
	// watch-later entry the account owns.
	DeleteAccount(ctx context.Context, id int64) error
}

type userService struct {
	users  repository.UserRepository
	hasher auth.Hasher
}

func NewUserService(users repository.UserRepository, hasher auth.Hasher) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
	}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if username == "" {
		return nil, validationErr("username is required")
	}
	if password == "" {
		return nil, validationErr("password is required")
	}
	if len(password) < 8 {
		return nil, validationErr("password must be at least 8 characters")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		// never fall through to storing a weak or empty hash
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) DeleteAccount(ctx context.Context, id int64) error {
	return s.users.DeleteCascading(ctx, id)
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
