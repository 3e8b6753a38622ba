package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, equipment_id, customer_id, start_date, end_date, total_cost, status, contract_number, notes, created_on`

func scanReservation(row interface{ Scan(...any) error }) (*domain.Reservation, error) {
	r := &domain.Reservation{}
	err := row.Scan(&r.ID, &r.EquipmentID, &r.CustomerID, &r.StartDate, &r.EndDate,
		&r.TotalCost, &r.Status, &r.ContractNo, &r.Notes, &r.CreatedOn)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *reservationRepository) CreateTx(ctx context.Context, tx *sql.Tx, rv *domain.Reservation) error {
	query := `INSERT INTO reservations (equipment_id, customer_id, start_date, end_date, total_cost, status, contract_number, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_on`
	return tx.QueryRowContext(ctx, query,
		rv.EquipmentID, rv.CustomerID, rv.StartDate, rv.EndDate,
		rv.TotalCost, rv.Status, rv.ContractNo, rv.Notes, time.Now()).
		Scan(&rv.ID, &rv.CreatedOn)
}

// AnyOverlappingTx runs the closed-interval overlap test against reservations
// that still block the equipment: existing.start <= window.end AND
// existing.end >= window.start, status in {pending, active}.
func (r *reservationRepository) AnyOverlappingTx(ctx context.Context, tx *sql.Tx, equipmentID int32, windowStart, windowEnd time.Time) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM reservations
	            WHERE equipment_id = $1
	              AND status IN ($2, $3)
	              AND start_date <= $4
	              AND end_date >= $5)`
	var exists bool
	err := tx.QueryRowContext(ctx, query, equipmentID,
		domain.ReservationStatusPending, domain.ReservationStatusActive,
		windowEnd, windowStart).Scan(&exists)
	return exists, err
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	rv, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("reservation %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *reservationRepository) List(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filter.CustomerID != 0 {
		query += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		args = append(args, filter.CustomerID)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_on DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Reservation
	for rows.Next() {
		rv, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *rv)
	}
	return list, rows.Err()
}

func (r *reservationRepository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.ReservationStatus) error {
	res, err := tx.ExecContext(ctx, `UPDATE reservations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundf("reservation %d not found", id)
	}
	return nil
}

func (r *reservationRepository) CountByStatus(ctx context.Context) (map[domain.ReservationStatus]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM reservations GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ReservationStatus]int32)
	for rows.Next() {
		var status domain.ReservationStatus
		var count int32
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// RevenueSince sums the total cost of active and completed reservations
// created after the cutoff.
func (r *reservationRepository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(total_cost), 0) FROM reservations
	          WHERE created_on >= $1 AND status IN ($2, $3)`
	var revenue float64
	err := r.db.QueryRowContext(ctx, query, since,
		domain.ReservationStatusActive, domain.ReservationStatusCompleted).Scan(&revenue)
	return revenue, err
}

// ListExpiredActive returns active reservations whose end date has passed.
// Used by the nightly maintenance job.
func (r *reservationRepository) ListExpiredActive(ctx context.Context, asOf time.Time) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE status = $1 AND end_date < $2 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, domain.ReservationStatusActive, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Reservation
	for rows.Next() {
		rv, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *rv)
	}
	return list, rows.Err()
}
