package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"equiprent-backend/internal/domain"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hasher := new(MockPasswordHasher)
		svc := NewAuthService(userRepo, hasher, new(MockTokenManager))

		hasher.On("Hash", "secret-password").Return("$2a$10$hash", nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "jan@example.com" && u.PasswordHash == "$2a$10$hash" && u.IsActive && !u.IsAdmin
		})).Return(nil).Once()

		user, err := svc.Register(ctx, RegisterInput{
			Name:     "Jan Kowalski",
			Email:    "jan@example.com",
			Password: "secret-password",
			Company:  "BuildCo",
		})
		require.NoError(t, err)
		assert.Equal(t, "Jan Kowalski", user.Name)
		userRepo.AssertExpectations(t)
	})

	t.Run("RejectsBadInput", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), new(MockPasswordHasher), new(MockTokenManager))

		_, err := svc.Register(ctx, RegisterInput{Name: "", Email: "jan@example.com", Password: "secret-password"})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		_, err = svc.Register(ctx, RegisterInput{Name: "Jan", Email: "not-an-email", Password: "secret-password"})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		_, err = svc.Register(ctx, RegisterInput{Name: "Jan", Email: "jan@example.com", Password: "short"})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hasher := new(MockPasswordHasher)
		svc := NewAuthService(userRepo, hasher, new(MockTokenManager))

		hasher.On("Hash", "secret-password").Return("$2a$10$hash", nil).Once()
		userRepo.On("Create", ctx, mock.Anything).Return(domain.Conflictf("email already registered")).Once()

		_, err := svc.Register(ctx, RegisterInput{Name: "Jan", Email: "jan@example.com", Password: "secret-password"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{ID: 42, Name: "Jan", Email: "jan@example.com", PasswordHash: "$2a$10$hash", IsActive: true}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hasher := new(MockPasswordHasher)
		tokens := new(MockTokenManager)
		svc := NewAuthService(userRepo, hasher, tokens)

		userRepo.On("GetByEmail", ctx, "jan@example.com").Return(stored, nil).Once()
		hasher.On("Verify", "secret-password", "$2a$10$hash").Return(true).Once()
		tokens.On("GenerateAccessToken", "jan@example.com").Return("signed.jwt.token", nil).Once()

		token, user, err := svc.Login(ctx, "jan@example.com", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, "signed.jwt.token", token)
		assert.Equal(t, stored, user)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, new(MockPasswordHasher), new(MockTokenManager))

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.NotFoundf("user not found")).Once()

		_, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		hasher := new(MockPasswordHasher)
		svc := NewAuthService(userRepo, hasher, new(MockTokenManager))

		userRepo.On("GetByEmail", ctx, "jan@example.com").Return(stored, nil).Once()
		hasher.On("Verify", "wrong", "$2a$10$hash").Return(false).Once()

		_, _, err := svc.Login(ctx, "jan@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("DeactivatedAccount", func(t *testing.T) {
		inactive := &domain.User{ID: 43, Email: "gone@example.com", PasswordHash: "$2a$10$hash", IsActive: false}
		userRepo := new(MockUserRepo)
		hasher := new(MockPasswordHasher)
		svc := NewAuthService(userRepo, hasher, new(MockTokenManager))

		userRepo.On("GetByEmail", ctx, "gone@example.com").Return(inactive, nil).Once()
		hasher.On("Verify", "secret-password", "$2a$10$hash").Return(true).Once()

		_, _, err := svc.Login(ctx, "gone@example.com", "secret-password")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
