package jobs

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
)

// CompleteExpiredReservations transitions active reservations whose rental
// window has passed to completed and frees their equipment. Each reservation
// is handled in its own transaction so one failure does not block the rest.
func (jr *JobRunner) CompleteExpiredReservations() {
	jr.runWithRecovery("CompleteExpiredReservations", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		expired, err := jr.store.ReservationRepository.ListExpiredActive(ctx, now)
		if err != nil {
			logger.Error("Failed to list expired reservations", "error", err)
			return
		}
		if len(expired) == 0 {
			return
		}

		completed := 0
		for _, reservation := range expired {
			if err := jr.completeReservation(ctx, reservation); err != nil {
				logger.Error("Failed to complete reservation",
					"reservation_id", reservation.ID,
					"contract_no", reservation.ContractNo,
					"error", err,
				)
				continue
			}
			completed++
		}

		logger.Info("Expired reservations processed", "expired", len(expired), "completed", completed)
	})
}

func (jr *JobRunner) completeReservation(ctx context.Context, reservation domain.Reservation) error {
	tx, err := jr.store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = jr.store.ReservationRepository.UpdateStatusTx(ctx, tx, reservation.ID, domain.ReservationStatusCompleted); err != nil {
		return err
	}
	if err = jr.store.EquipmentRepository.UpdateStatusTx(ctx, tx, reservation.EquipmentID, domain.EquipmentStatusAvailable); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	if jr.emailSvc != nil {
		if customer, custErr := jr.store.UserRepository.GetByID(ctx, reservation.CustomerID); custErr == nil {
			if mailErr := jr.emailSvc.SendReservationStatusNotification(ctx, customer.Email, customer.Name, reservation.ContractNo, domain.ReservationStatusCompleted); mailErr != nil {
				logger.Warn("Failed to send completion notification",
					"reservation_id", reservation.ID,
					"error", mailErr,
				)
			}
		}
	}
	return nil
}

// PurgeRateLimiter drops clients with no requests inside the current window
// so the limiter's memory does not grow with every address ever seen.
func (jr *JobRunner) PurgeRateLimiter() {
	jr.runWithRecovery("PurgeRateLimiter", func() {
		removed := jr.limiter.Purge()
		if removed > 0 {
			logger.Info("Rate limiter purged", "removed_clients", removed)
		}
	})
}
