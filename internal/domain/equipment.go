package domain

import "time"

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "available"
	EquipmentStatusRented      EquipmentStatus = "rented"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentStatusAvailable, EquipmentStatusRented, EquipmentStatusMaintenance:
		return true
	}
	return false
}

type Equipment struct {
	ID          int32           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	DailyRate   float64         `json:"daily_rate"`
	Status      EquipmentStatus `json:"status"`
	Description string          `json:"description"`
	Weight      string          `json:"weight"`
	FuelType    string          `json:"fuel_type"`
	Power       string          `json:"power"`
	Reach       string          `json:"reach"`
	ImageURL    string          `json:"image_url"`
	// Features and Specifications are stored as JSON text and decoded on read.
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Available      bool              `json:"available"`
	CreatedOn      time.Time         `json:"created_on"`
}

// IsAvailable derives availability from status. Never stored independently.
func (e *Equipment) IsAvailable() bool {
	return e.Status == EquipmentStatusAvailable
}

// EquipmentUpdate carries a partial update. Nil fields are left untouched.
type EquipmentUpdate struct {
	Name           *string            `json:"name,omitempty"`
	Category       *string            `json:"category,omitempty"`
	DailyRate      *float64           `json:"daily_rate,omitempty"`
	Status         *EquipmentStatus   `json:"status,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Weight         *string            `json:"weight,omitempty"`
	FuelType       *string            `json:"fuel_type,omitempty"`
	Power          *string            `json:"power,omitempty"`
	Reach          *string            `json:"reach,omitempty"`
	ImageURL       *string            `json:"image_url,omitempty"`
	Features       *[]string          `json:"features,omitempty"`
	Specifications *map[string]string `json:"specifications,omitempty"`
}
