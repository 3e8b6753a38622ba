package service

import (
	"context"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo}
}

func (s *equipmentService) ListEquipment(ctx context.Context, filter repository.EquipmentFilter) ([]domain.Equipment, error) {
	return s.equipmentRepo.List(ctx, filter)
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) CreateEquipment(ctx context.Context, caller *domain.User, eq *domain.Equipment) (*domain.Equipment, error) {
	if !caller.IsAdmin {
		return nil, domain.Forbiddenf("admin privileges required")
	}
	if eq.Name == "" || eq.Category == "" {
		return nil, domain.InvalidArgumentf("name and category are required")
	}
	if eq.DailyRate <= 0 {
		return nil, domain.InvalidArgumentf("daily rate must be positive")
	}
	if eq.Status != "" && !eq.Status.Valid() {
		return nil, domain.InvalidArgumentf("unknown equipment status %q", eq.Status)
	}
	if err := s.equipmentRepo.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, caller *domain.User, id int32, upd *domain.EquipmentUpdate) (*domain.Equipment, error) {
	if !caller.IsAdmin {
		return nil, domain.Forbiddenf("admin privileges required")
	}
	if upd.DailyRate != nil && *upd.DailyRate <= 0 {
		return nil, domain.InvalidArgumentf("daily rate must be positive")
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, domain.InvalidArgumentf("unknown equipment status %q", *upd.Status)
	}
	return s.equipmentRepo.Update(ctx, id, upd)
}
