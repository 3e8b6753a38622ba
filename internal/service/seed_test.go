package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"equiprent-backend/internal/domain"
)

func TestSeedService_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("SeedsEmptyDatabase", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		userRepo := new(MockUserRepo)
		hasher := new(MockPasswordHasher)
		svc := NewSeedService(equipmentRepo, userRepo, hasher, "admin@example.com", "admin12345")

		equipmentRepo.On("ExistsAny", ctx).Return(false, nil).Once()
		equipmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Equipment")).Return(nil).Times(3)
		hasher.On("Hash", "admin12345").Return("$2a$10$hash", nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "admin@example.com" && u.IsAdmin && u.IsActive
		})).Return(nil).Once()

		created, err := svc.Seed(ctx)
		require.NoError(t, err)
		assert.True(t, created)
		equipmentRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("NoOpWhenDataExists", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		userRepo := new(MockUserRepo)
		svc := NewSeedService(equipmentRepo, userRepo, new(MockPasswordHasher), "admin@example.com", "admin12345")

		equipmentRepo.On("ExistsAny", ctx).Return(true, nil).Once()

		created, err := svc.Seed(ctx)
		require.NoError(t, err)
		assert.False(t, created)
		equipmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
