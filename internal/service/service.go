package service

import (
	"context"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type EquipmentService interface {
	ListEquipment(ctx context.Context, filter repository.EquipmentFilter) ([]domain.Equipment, error)
	GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error)
	CreateEquipment(ctx context.Context, caller *domain.User, eq *domain.Equipment) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, caller *domain.User, id int32, upd *domain.EquipmentUpdate) (*domain.Equipment, error)
}

type ReservationService interface {
	CreateReservation(ctx context.Context, caller *domain.User, input CreateReservationInput) (*domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, caller *domain.User, id int32, status domain.ReservationStatus) (*domain.Reservation, error)
	ListReservations(ctx context.Context, caller *domain.User, status domain.ReservationStatus) ([]domain.Reservation, error)
	GetReservation(ctx context.Context, caller *domain.User, id int32) (*domain.Reservation, error)
}

type StatsService interface {
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}

type SeedService interface {
	Seed(ctx context.Context) (bool, error) // returns false when data already exists
}

type EmailService interface {
	SendReservationConfirmation(ctx context.Context, email, name, equipmentName, contractNo string, totalCost float64) error
	SendReservationStatusNotification(ctx context.Context, email, name, contractNo string, status domain.ReservationStatus) error
}
