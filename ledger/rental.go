package ledger

import (
	"time"

	"rental-ledger/models"
)

// timestampLayout is the day/month display format used on confirmations.
const timestampLayout = "02/01/2006 15:04"

// RentConfirmation summarizes a freshly created rental for display.
// Timestamps are pre-formatted as DD/MM/YYYY HH:MM.
type RentConfirmation struct {
	RentalID            int     `json:"rental_id"`
	CustomerName        string  `json:"customer_name"`
	VehicleName         string  `json:"vehicle_name"`
	TotalAmount         float64 `json:"total_amount"`
	PickupTime          string  `json:"pickup_time"`
	EstimatedReturnTime string  `json:"estimated_return_time"`
}

// ReturnConfirmation reports the close of a rental.
type ReturnConfirmation struct {
	RentalID   int    `json:"rental_id"`
	ReturnedAt string `json:"returned_at"`
}

// RentVehicle opens a rental on an available vehicle for the session's
// user. The vehicle becomes unavailable until returned; the rental id is
// sequential and the total is days times the daily rate.
func (e *Engine) RentVehicle(vehicleID int, customerName, taxID, phone string, days int, dailyRate float64) (RentConfirmation, error) {
	actor, ok := e.CurrentUser()
	if !ok {
		return RentConfirmation{}, ErrNotLoggedIn
	}
	i, ok := e.vehicleIdx[vehicleID]
	if !ok {
		return RentConfirmation{}, ErrNotFound
	}
	v := &e.vehicles[i]
	if !v.Available {
		return RentConfirmation{}, ErrVehicleUnavailable
	}

	pickup := e.now()
	r := models.Rental{
		ID:                  len(e.rentals) + 1,
		VehicleID:           v.ID,
		CustomerName:        customerName,
		RentedBy:            actor.Username,
		TaxID:               taxID,
		Phone:               phone,
		Days:                days,
		DailyRate:           dailyRate,
		TotalAmount:         float64(days) * dailyRate,
		PickupTime:          pickup,
		EstimatedReturnTime: pickup.AddDate(0, 0, days),
	}

	v.Available = false
	e.rentals = append(e.rentals, r)
	e.rentalIdx[r.ID] = len(e.rentals) - 1
	if err := e.persist(); err != nil {
		return RentConfirmation{}, err
	}

	return RentConfirmation{
		RentalID:            r.ID,
		CustomerName:        r.CustomerName,
		VehicleName:         v.Name,
		TotalAmount:         r.TotalAmount,
		PickupTime:          r.PickupTime.Format(timestampLayout),
		EstimatedReturnTime: r.EstimatedReturnTime.Format(timestampLayout),
	}, nil
}

// ReturnVehicle closes an open rental: stamps the actual return time and
// frees the vehicle. The transition is one-way; a second return of the
// same rental fails. Any logged-in user may return any rental.
func (e *Engine) ReturnVehicle(rentalID int) (ReturnConfirmation, error) {
	if _, ok := e.CurrentUser(); !ok {
		return ReturnConfirmation{}, ErrNotLoggedIn
	}
	i, ok := e.rentalIdx[rentalID]
	if !ok || !e.rentals[i].Open() {
		return ReturnConfirmation{}, ErrAlreadyReturned
	}

	r := &e.rentals[i]
	returned := e.now()
	r.ActualReturnTime = &returned
	if vi, ok := e.vehicleIdx[r.VehicleID]; ok {
		e.vehicles[vi].Available = true
	}
	if err := e.persist(); err != nil {
		return ReturnConfirmation{}, err
	}

	return ReturnConfirmation{
		RentalID:   r.ID,
		ReturnedAt: returned.Format(timestampLayout),
	}, nil
}

// ListOpenRentals returns rentals not yet returned, in insertion order.
func (e *Engine) ListOpenRentals() []models.Rental {
	var open []models.Rental
	for _, r := range e.rentals {
		if r.Open() {
			open = append(open, r)
		}
	}
	return open
}

// rentalsSince returns rentals picked up at or after cutoff, in insertion
// order, paired with their open/returned status.
func (e *Engine) rentalsSince(cutoff time.Time) []RentalWithStatus {
	var out []RentalWithStatus
	for _, r := range e.rentals {
		if !r.PickupTime.Before(cutoff) {
			out = append(out, withStatus(r))
		}
	}
	return out
}
