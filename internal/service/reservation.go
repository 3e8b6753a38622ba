package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/utils"
)

// contractPrefix namespaces contract numbers issued by this deployment.
const contractPrefix = "EQR"

// TxBeginner opens the transaction that makes the booking check-then-write
// sequence atomic. Satisfied by *postgres.Store.
type TxBeginner interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
}

type CreateReservationInput struct {
	EquipmentID int32  `json:"equipment_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Notes       string `json:"notes"`
}

type reservationService struct {
	txBeginner      TxBeginner
	reservationRepo repository.ReservationRepository
	equipmentRepo   repository.EquipmentRepository
	userRepo        repository.UserRepository
	emailSvc        EmailService
	now             func() time.Time
}

func NewReservationService(
	txBeginner TxBeginner,
	reservationRepo repository.ReservationRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) ReservationService {
	return &reservationService{
		txBeginner:      txBeginner,
		reservationRepo: reservationRepo,
		equipmentRepo:   equipmentRepo,
		userRepo:        userRepo,
		emailSvc:        emailSvc,
		now:             time.Now,
	}
}

// generateContractNumber builds EQR/<year>/<MMDDHHMMSS>. Uniqueness relies on
// second-level issue-time granularity; a known weakness accepted for a
// single-node deployment rather than solved with distributed coordination.
func (s *reservationService) generateContractNumber() string {
	now := s.now()
	return fmt.Sprintf("%s/%d/%s", contractPrefix, now.Year(), now.Format("0102150405"))
}

// CreateReservation books equipment for an inclusive day range. The
// availability check, the overlap check, the reservation insert and the
// equipment status transition all happen inside one transaction holding a
// row lock on the equipment record, so two concurrent bookings of the same
// unit cannot both pass the checks.
func (s *reservationService) CreateReservation(ctx context.Context, caller *domain.User, input CreateReservationInput) (*domain.Reservation, error) {
	start, err := utils.ParseDate(input.StartDate)
	if err != nil {
		return nil, domain.InvalidArgumentf("invalid start date")
	}
	end, err := utils.ParseDate(input.EndDate)
	if err != nil {
		return nil, domain.InvalidArgumentf("invalid end date")
	}
	if end.Before(start) {
		return nil, domain.InvalidArgumentf("end date must not be before start date")
	}

	tx, err := s.txBeginner.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Locks the equipment row until commit.
	equipment, err := s.equipmentRepo.GetByIDTx(ctx, tx, input.EquipmentID)
	if err != nil {
		return nil, err
	}
	if !equipment.IsAvailable() {
		err = domain.Conflictf("equipment is not available")
		return nil, err
	}

	windowStart, windowEnd := utils.BookingWindow(start, end)
	overlapping, err := s.reservationRepo.AnyOverlappingTx(ctx, tx, equipment.ID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	if overlapping {
		err = domain.Conflictf("equipment is already booked in this period")
		return nil, err
	}

	days := utils.InclusiveDays(start, end)
	reservation := &domain.Reservation{
		EquipmentID: equipment.ID,
		CustomerID:  caller.ID,
		StartDate:   windowStart,
		EndDate:     windowEnd,
		TotalCost:   float64(days) * equipment.DailyRate,
		Status:      domain.ReservationStatusPending,
		ContractNo:  s.generateContractNumber(),
		Notes:       input.Notes,
	}
	if err = s.reservationRepo.CreateTx(ctx, tx, reservation); err != nil {
		return nil, err
	}

	// Booking always rents the unit; single-unit equipment model.
	if err = s.equipmentRepo.UpdateStatusTx(ctx, tx, equipment.ID, domain.EquipmentStatusRented); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	equipment.Status = domain.EquipmentStatusRented
	equipment.Available = false
	reservation.Equipment = equipment
	reservation.Customer = caller

	if s.emailSvc != nil {
		if mailErr := s.emailSvc.SendReservationConfirmation(ctx, caller.Email, caller.Name, equipment.Name, reservation.ContractNo, reservation.TotalCost); mailErr != nil {
			logger.Warn("failed to send reservation confirmation", "error", mailErr, "reservation_id", reservation.ID)
		}
	}

	return reservation, nil
}

// equipmentStatusFor maps a reservation status transition to the resulting
// equipment status. The empty value means the equipment is left untouched.
// Freeing equipment on completed/cancelled is safe only because at most one
// pending/active reservation exists per unit.
func equipmentStatusFor(status domain.ReservationStatus) domain.EquipmentStatus {
	switch status {
	case domain.ReservationStatusCompleted, domain.ReservationStatusCancelled:
		return domain.EquipmentStatusAvailable
	case domain.ReservationStatusActive:
		return domain.EquipmentStatusRented
	default:
		return ""
	}
}

func (s *reservationService) UpdateReservationStatus(ctx context.Context, caller *domain.User, id int32, status domain.ReservationStatus) (*domain.Reservation, error) {
	if !caller.IsAdmin {
		return nil, domain.Forbiddenf("admin privileges required")
	}
	if !status.Valid() {
		return nil, domain.InvalidArgumentf("unknown reservation status %q", status)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := s.txBeginner.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.reservationRepo.UpdateStatusTx(ctx, tx, id, status); err != nil {
		return nil, err
	}
	if next := equipmentStatusFor(status); next != "" {
		if err = s.equipmentRepo.UpdateStatusTx(ctx, tx, reservation.EquipmentID, next); err != nil {
			return nil, err
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	reservation.Status = status

	if s.emailSvc != nil {
		if customer, custErr := s.userRepo.GetByID(ctx, reservation.CustomerID); custErr == nil {
			if mailErr := s.emailSvc.SendReservationStatusNotification(ctx, customer.Email, customer.Name, reservation.ContractNo, status); mailErr != nil {
				logger.Warn("failed to send status notification", "error", mailErr, "reservation_id", id)
			}
		}
	}

	return reservation, nil
}

func (s *reservationService) ListReservations(ctx context.Context, caller *domain.User, status domain.ReservationStatus) ([]domain.Reservation, error) {
	if status != "" && !status.Valid() {
		return nil, domain.InvalidArgumentf("unknown reservation status %q", status)
	}
	filter := repository.ReservationFilter{Status: status}
	if !caller.IsAdmin {
		// Customers only ever see their own reservations.
		filter.CustomerID = caller.ID
	}
	return s.reservationRepo.List(ctx, filter)
}

func (s *reservationService) GetReservation(ctx context.Context, caller *domain.User, id int32) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin && reservation.CustomerID != caller.ID {
		return nil, domain.Forbiddenf("not allowed to view this reservation")
	}

	if equipment, eqErr := s.equipmentRepo.GetByID(ctx, reservation.EquipmentID); eqErr == nil {
		reservation.Equipment = equipment
	}
	if customer, custErr := s.userRepo.GetByID(ctx, reservation.CustomerID); custErr == nil {
		reservation.Customer = customer
	}
	return reservation, nil
}
