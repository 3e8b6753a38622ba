package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

func reservationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "equipment_id", "customer_id", "start_date", "end_date",
		"total_cost", "status", "contract_number", "notes", "created_on",
	}).AddRow(
		int32(11), int32(7), int32(42),
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 17, 23, 59, 59, 0, time.UTC),
		2550.0, "pending", "EQR/2026/0310143005", "site A",
		time.Date(2026, 3, 10, 14, 30, 5, 0, time.UTC),
	)
}

func TestReservationRepository_AnyOverlappingTx(t *testing.T) {
	ctx := context.Background()
	windowStart := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 3, 17, 23, 59, 59, 0, time.UTC)

	t.Run("OverlapFound", func(t *testing.T) {
		store, dbMock := newDBMock(t)
		dbMock.ExpectBegin()
		// Closed-interval test: blocking statuses, window end against
		// existing start and window start against existing end.
		dbMock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(7), domain.ReservationStatusPending, domain.ReservationStatusActive, windowEnd, windowStart).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		dbMock.ExpectRollback()

		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback()

		overlapping, err := store.ReservationRepository.AnyOverlappingTx(ctx, tx, 7, windowStart, windowEnd)
		require.NoError(t, err)
		assert.True(t, overlapping)
	})

	t.Run("NoOverlap", func(t *testing.T) {
		store, dbMock := newDBMock(t)
		dbMock.ExpectBegin()
		dbMock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(7), domain.ReservationStatusPending, domain.ReservationStatusActive, windowEnd, windowStart).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		dbMock.ExpectRollback()

		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback()

		overlapping, err := store.ReservationRepository.AnyOverlappingTx(ctx, tx, 7, windowStart, windowEnd)
		require.NoError(t, err)
		assert.False(t, overlapping)
	})
}

func TestReservationRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("ByCustomerAndStatus", func(t *testing.T) {
		store, dbMock := newDBMock(t)
		dbMock.ExpectQuery("SELECT (.+) FROM reservations WHERE 1=1 AND customer_id = (.+) AND status = (.+) ORDER BY created_on DESC").
			WithArgs(int32(42), domain.ReservationStatusPending).
			WillReturnRows(reservationRows())

		list, err := store.ReservationRepository.List(ctx, repository.ReservationFilter{
			CustomerID: 42,
			Status:     domain.ReservationStatusPending,
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "EQR/2026/0310143005", list[0].ContractNo)
	})

	t.Run("Unfiltered", func(t *testing.T) {
		store, dbMock := newDBMock(t)
		dbMock.ExpectQuery("SELECT (.+) FROM reservations WHERE 1=1 ORDER BY created_on DESC").
			WillReturnRows(reservationRows())

		list, err := store.ReservationRepository.List(ctx, repository.ReservationFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestReservationRepository_UpdateStatusTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Updated", func(t *testing.T) {
		store, dbMock := newDBMock(t)
		dbMock.ExpectBegin()
		dbMock.ExpectExec("UPDATE reservations SET status = (.+) WHERE id = ").
			WithArgs(domain.ReservationStatusCompleted, int32(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)

		require.NoError(t, store.ReservationRepository.UpdateStatusTx(ctx, tx, 11, domain.ReservationStatusCompleted))
		require.NoError(t, tx.Commit())
	})

	t.Run("MissingRow", func(t *testing.T) {
		store, dbMock := newDBMock(t)
		dbMock.ExpectBegin()
		dbMock.ExpectExec("UPDATE reservations SET status = (.+) WHERE id = ").
			WithArgs(domain.ReservationStatusCompleted, int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		dbMock.ExpectRollback()

		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback()

		err = store.ReservationRepository.UpdateStatusTx(ctx, tx, 99, domain.ReservationStatusCompleted)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReservationRepository_RevenueSince(t *testing.T) {
	ctx := context.Background()
	store, dbMock := newDBMock(t)
	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	dbMock.ExpectQuery("SELECT COALESCE").
		WithArgs(since, domain.ReservationStatusActive, domain.ReservationStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(12750.0))

	revenue, err := store.ReservationRepository.RevenueSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, 12750.0, revenue)
}

func TestReservationRepository_ListExpiredActive(t *testing.T) {
	ctx := context.Background()
	store, dbMock := newDBMock(t)
	asOf := time.Date(2026, 3, 20, 2, 0, 0, 0, time.UTC)

	dbMock.ExpectQuery("SELECT (.+) FROM reservations\\s+WHERE status = (.+) AND end_date < ").
		WithArgs(domain.ReservationStatusActive, asOf).
		WillReturnRows(reservationRows())

	list, err := store.ReservationRepository.ListExpiredActive(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int32(11), list[0].ID)
}
