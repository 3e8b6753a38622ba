package service

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type statsService struct {
	equipmentRepo   repository.EquipmentRepository
	reservationRepo repository.ReservationRepository
	userRepo        repository.UserRepository
	now             func() time.Time
}

func NewStatsService(
	equipmentRepo repository.EquipmentRepository,
	reservationRepo repository.ReservationRepository,
	userRepo repository.UserRepository,
) StatsService {
	return &statsService{
		equipmentRepo:   equipmentRepo,
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		now:             time.Now,
	}
}

func (s *statsService) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	equipmentCounts, err := s.equipmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	reservationCounts, err := s.reservationRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.userRepo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}

	// Trailing 30-day revenue over active and completed reservations.
	revenue, err := s.reservationRepo.RevenueSince(ctx, s.now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	var equipmentTotal int32
	for _, count := range equipmentCounts {
		equipmentTotal += count
	}
	var reservationTotal int32
	for _, count := range reservationCounts {
		reservationTotal += count
	}

	return &domain.Statistics{
		Equipment: domain.EquipmentStats{
			Total:       equipmentTotal,
			Available:   equipmentCounts[domain.EquipmentStatusAvailable],
			Rented:      equipmentCounts[domain.EquipmentStatusRented],
			Maintenance: equipmentCounts[domain.EquipmentStatusMaintenance],
		},
		Reservations: domain.ReservationStats{
			Total:     reservationTotal,
			Active:    reservationCounts[domain.ReservationStatusActive],
			Pending:   reservationCounts[domain.ReservationStatusPending],
			Completed: reservationCounts[domain.ReservationStatusCompleted],
		},
		Customers: domain.CustomerStats{Total: customers},
		Revenue: domain.RevenueStats{
			Monthly:  revenue,
			Currency: "PLN",
		},
	}, nil
}
