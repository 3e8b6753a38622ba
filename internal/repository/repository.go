package repository

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CountCustomers(ctx context.Context) (int32, error)
}

// EquipmentFilter narrows equipment listings. Zero values mean "no filter".
type EquipmentFilter struct {
	Category      string
	Status        domain.EquipmentStatus
	AvailableOnly bool
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	List(ctx context.Context, filter EquipmentFilter) ([]domain.Equipment, error)
	Update(ctx context.Context, id int32, upd *domain.EquipmentUpdate) (*domain.Equipment, error)
	ExistsAny(ctx context.Context) (bool, error)
	CountByStatus(ctx context.Context) (map[domain.EquipmentStatus]int32, error)

	// Transactional operations for the booking critical section. GetByIDTx
	// takes a row-level lock on the equipment record, serializing concurrent
	// bookings of the same unit for the duration of the transaction.
	GetByIDTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Equipment, error)
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.EquipmentStatus) error
}

// ReservationFilter narrows reservation listings.
type ReservationFilter struct {
	CustomerID int32 // 0 means all customers
	Status     domain.ReservationStatus
}

type ReservationRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, error)
	CountByStatus(ctx context.Context) (map[domain.ReservationStatus]int32, error)
	RevenueSince(ctx context.Context, since time.Time) (float64, error)
	ListExpiredActive(ctx context.Context, asOf time.Time) ([]domain.Reservation, error)

	// Transactional operations for the booking critical section.
	CreateTx(ctx context.Context, tx *sql.Tx, r *domain.Reservation) error
	AnyOverlappingTx(ctx context.Context, tx *sql.Tx, equipmentID int32, windowStart, windowEnd time.Time) (bool, error)
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.ReservationStatus) error
}
