package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, phone, company, tax_id, address, password_hash, is_active, is_admin, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		u.Name, u.Email, u.Phone, u.Company, u.TaxID, u.Address,
		u.PasswordHash, u.IsActive, u.IsAdmin, time.Now()).Scan(&u.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return domain.Conflictf("email already registered")
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, phone, company, tax_id, address, password_hash, is_active, is_admin, created_on
	          FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Company, &u.TaxID, &u.Address,
		&u.PasswordHash, &u.IsActive, &u.IsAdmin, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, phone, company, tax_id, address, password_hash, is_active, is_admin, created_on
	          FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Company, &u.TaxID, &u.Address,
		&u.PasswordHash, &u.IsActive, &u.IsAdmin, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("user %s not found", email)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) CountCustomers(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count)
	return count, err
}
