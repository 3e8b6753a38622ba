package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/stretchr/testify/mock"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/security"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) CountCustomers(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}

func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) List(ctx context.Context, filter repository.EquipmentFilter) ([]domain.Equipment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) Update(ctx context.Context, id int32, upd *domain.EquipmentUpdate) (*domain.Equipment, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) ExistsAny(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockEquipmentRepo) CountByStatus(ctx context.Context) (map[domain.EquipmentStatus]int32, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.EquipmentStatus]int32), args.Error(1)
}

func (m *MockEquipmentRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.EquipmentStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) List(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) CountByStatus(ctx context.Context) (map[domain.ReservationStatus]int32, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.ReservationStatus]int32), args.Error(1)
}

func (m *MockReservationRepo) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReservationRepo) ListExpiredActive(ctx context.Context, asOf time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, r *domain.Reservation) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *MockReservationRepo) AnyOverlappingTx(ctx context.Context, tx *sql.Tx, equipmentID int32, windowStart, windowEnd time.Time) (bool, error) {
	args := m.Called(ctx, tx, equipmentID, windowStart, windowEnd)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.ReservationStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReservationConfirmation(ctx context.Context, email, name, equipmentName, contractNo string, totalCost float64) error {
	args := m.Called(ctx, email, name, equipmentName, contractNo, totalCost)
	return args.Error(0)
}

func (m *MockEmailService) SendReservationStatusNotification(ctx context.Context, email, name, contractNo string, status domain.ReservationStatus) error {
	args := m.Called(ctx, email, name, contractNo, status)
	return args.Error(0)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
