package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusActive,
		ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	}
	return false
}

type Reservation struct {
	ID          int32             `json:"id"`
	EquipmentID int32             `json:"equipment_id"`
	CustomerID  int32             `json:"customer_id"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	TotalCost   float64           `json:"total_cost"`
	Status      ReservationStatus `json:"status"`
	ContractNo  string            `json:"contract_number"`
	Notes       string            `json:"notes"`
	CreatedOn   time.Time         `json:"created_on"`
	Equipment   *Equipment        `json:"equipment,omitempty"`
	Customer    *User             `json:"customer,omitempty"`
}
