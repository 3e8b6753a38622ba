package postgres

import (
	"context"
	"database/sql"

	"equiprent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.EquipmentRepository
	repository.ReservationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		EquipmentRepository:   NewEquipmentRepository(db),
		ReservationRepository: NewReservationRepository(db),
	}
}

// BeginTx opens a transaction for multi-row commits such as the booking
// critical section.
func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}
