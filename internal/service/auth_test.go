package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"contabil/internal/model"
	repomocks "contabil/internal/repository/mocks"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and lowercases the email", func(t *testing.T) {
		users := new(repomocks.MockUserRepository)
		users.On("FindByEmail", ctx, "ana@example.com").Return(nil, sql.ErrNoRows)
		users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			if u.Email != "ana@example.com" || u.Role != model.RoleUser {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret!")) == nil
		})).Return(&model.User{ID: "user-1", Email: "ana@example.com"}, nil)

		svc := NewAuthService(users, bcrypt.MinCost)
		out, err := svc.Register(ctx, RegisterInput{Email: " Ana@Example.com ", Name: "Ana", Password: "s3cret!"})

		assert.NoError(t, err)
		assert.Equal(t, "user-1", out.ID)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(repomocks.MockUserRepository)
		users.On("FindByEmail", ctx, "ana@example.com").Return(&model.User{ID: "user-1"}, nil)

		svc := NewAuthService(users, bcrypt.MinCost)
		_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Name: "Ana", Password: "s3cret!"})

		assert.ErrorIs(t, err, ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short password", func(t *testing.T) {
		svc := NewAuthService(new(repomocks.MockUserRepository), bcrypt.MinCost)
		_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "abc"})

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	stored := &model.User{ID: "user-1", Email: "ana@example.com", PasswordHash: string(hash)}

	users := new(repomocks.MockUserRepository)
	users.On("FindByEmail", ctx, "ana@example.com").Return(stored, nil)
	users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)

	svc := NewAuthService(users, bcrypt.MinCost)

	t.Run("success", func(t *testing.T) {
		out, err := svc.Login(ctx, "ana@example.com", "s3cret!")
		assert.NoError(t, err)
		assert.Equal(t, "user-1", out.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ana@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "s3cret!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
