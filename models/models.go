package models

import "time"

// Role of a user account. Only admins may manage users and vehicles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStandard
}

// User stores login credentials and the account role. Passwords are kept
// in plaintext: the ledger is single-tenant and the data file is the
// operator's own.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Vehicle is one unit of the rental fleet. Plates are unique
// case-insensitively; Available is false exactly while an open rental
// references the vehicle.
type Vehicle struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Year      string `json:"year"`
	Plate     string `json:"plate"`
	Available bool   `json:"available"`
}

// Rental records one rental transaction. The ledger is append-only: after
// creation the only mutation a rental ever sees is the single write of
// ActualReturnTime when the vehicle comes back.
type Rental struct {
	ID                  int        `json:"rental_id"`
	VehicleID           int        `json:"vehicle_id"`
	CustomerName        string     `json:"customer_name"`
	RentedBy            string     `json:"rented_by"`
	TaxID               string     `json:"tax_id"`
	Phone               string     `json:"phone"`
	Days                int        `json:"days"`
	DailyRate           float64    `json:"daily_rate"`
	TotalAmount         float64    `json:"total_amount"`
	PickupTime          time.Time  `json:"pickup_time"`
	EstimatedReturnTime time.Time  `json:"estimated_return_time"`
	ActualReturnTime    *time.Time `json:"actual_return_time"`
}

// Open reports whether the rental has not been returned yet.
func (r *Rental) Open() bool {
	return r.ActualReturnTime == nil
}
