package domain

// Statistics is the admin dashboard aggregate.
type Statistics struct {
	Equipment    EquipmentStats   `json:"equipment"`
	Reservations ReservationStats `json:"reservations"`
	Customers    CustomerStats    `json:"customers"`
	Revenue      RevenueStats     `json:"revenue"`
}

type EquipmentStats struct {
	Total       int32 `json:"total"`
	Available   int32 `json:"available"`
	Rented      int32 `json:"rented"`
	Maintenance int32 `json:"maintenance"`
}

type ReservationStats struct {
	Total     int32 `json:"total"`
	Active    int32 `json:"active"`
	Pending   int32 `json:"pending"`
	Completed int32 `json:"completed"`
}

type CustomerStats struct {
	Total int32 `json:"total"`
}

type RevenueStats struct {
	Monthly  float64 `json:"monthly"`
	Currency string  `json:"currency"`
}
