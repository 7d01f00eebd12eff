package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"contabil/internal/model"
	"contabil/internal/repository"
)

// RegisterInput are the fields of a registration request.
type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AuthService handles account registration and credential checks.
type AuthService interface {
	// Register creates a new account with a bcrypt-hashed password.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Login verifies credentials and returns the account on success.
	Login(ctx context.Context, email, password string) (*model.User, error)

	// Me resolves the account behind a session.
	Me(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repository.UserRepository, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{users: users, bcryptCost: bcryptCost}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &ValidationError{Message: "a valid email is required"}
	}
	if len(in.Password) < 6 {
		return nil, &ValidationError{Message: "password must be at least 6 characters"}
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, &model.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Role:         model.RoleUser,
		PasswordHash: string(hash),
	})
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
