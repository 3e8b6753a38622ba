package service

import (
	"context"
	"strings"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/security"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	TaxID    string `json:"tax_id"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

type authService struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, hasher security.PasswordHasher, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Name == "" || !strings.Contains(input.Email, "@") {
		return nil, domain.InvalidArgumentf("name and a valid email are required")
	}
	if len(input.Password) < 8 {
		return nil, domain.InvalidArgumentf("password must be at least 8 characters")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Company:      input.Company,
		TaxID:        input.TaxID,
		Address:      input.Address,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.Unauthorizedf("invalid email or password")
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.Unauthorizedf("invalid email or password")
	}
	if !user.IsActive {
		return "", nil, domain.Unauthorizedf("account has been deactivated")
	}

	token, err := s.tokens.GenerateAccessToken(user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
