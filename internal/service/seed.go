package service

import (
	"context"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/security"
)

type seedService struct {
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
	hasher        security.PasswordHasher
	adminEmail    string
	adminPassword string
}

func NewSeedService(
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	hasher security.PasswordHasher,
	adminEmail, adminPassword string,
) SeedService {
	return &seedService{
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		hasher:        hasher,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// Seed loads sample equipment and the bootstrap admin account. It is a no-op
// when equipment already exists, so the endpoint is safe to call repeatedly.
func (s *seedService) Seed(ctx context.Context) (bool, error) {
	exists, err := s.equipmentRepo.ExistsAny(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	sample := []domain.Equipment{
		{
			Name:        "Crawler excavator CAT 320",
			Category:    "Earthmoving",
			DailyRate:   850.0,
			Status:      domain.EquipmentStatusAvailable,
			Description: "20-tonne crawler excavator with a 9.5m working reach",
			Weight:      "20 t",
			FuelType:    "Diesel",
			Power:       "129 kW",
			Reach:       "9.5m",
			Features:    []string{"GPS", "Air conditioning", "Rear camera", "Hydraulic hammer"},
			Specifications: map[string]string{
				"bucketCapacity":  "1.2m3",
				"maxDepth":        "6.8m",
				"transportWeight": "20500kg",
				"enginePower":     "129kW",
			},
		},
		{
			Name:        "Tower crane Liebherr 85EC",
			Category:    "Cranes",
			DailyRate:   1200.0,
			Status:      domain.EquipmentStatusRented,
			Description: "Tower crane lifting 6 tonnes at jib end",
			Weight:      "8 t",
			FuelType:    "Electric",
			Power:       "22 kW",
			Reach:       "50m",
			Features:    []string{"Automation", "Personnel lift", "LED lighting", "Anti-collision system"},
			Specifications: map[string]string{
				"maxLoad":      "6 t",
				"jibLength":    "50m",
				"maxHeight":    "150m",
				"liftingSpeed": "120m/min",
			},
		},
		{
			Name:        "Frame scaffolding 100m2",
			Category:    "Scaffolding",
			DailyRate:   45.0,
			Status:      domain.EquipmentStatusAvailable,
			Description: "Complete frame scaffolding with platforms and guard rails",
			Weight:      "25kg/m2",
			FuelType:    "None",
			Power:       "None",
			Reach:       "20m",
			Features:    []string{"Galvanized", "Work platforms", "Guard rails", "Access ladders"},
			Specifications: map[string]string{
				"area":         "100m2",
				"maxHeight":    "20m",
				"loadCapacity": "200kg/m2",
				"material":     "Galvanized steel",
			},
		},
	}
	for i := range sample {
		if err := s.equipmentRepo.Create(ctx, &sample[i]); err != nil {
			return false, err
		}
	}

	hash, err := s.hasher.Hash(s.adminPassword)
	if err != nil {
		return false, err
	}
	admin := &domain.User{
		Name:         "Administrator",
		Email:        s.adminEmail,
		Phone:        "+48 123 456 789",
		Company:      "Equipment Rental Sp. z o.o.",
		TaxID:        "1234567890",
		Address:      "ul. Budowlana 1, 00-001 Warszawa",
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, err
	}

	logger.Info("sample data seeded", "equipment", len(sample), "admin", s.adminEmail)
	return true, nil
}
