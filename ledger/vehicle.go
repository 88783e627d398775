package ledger

import (
	"strings"

	"rental-ledger/models"
)

// RegisterVehicle adds a vehicle to the fleet. Admin only. Ids are
// assigned sequentially from 1; plates are unique case-insensitively.
func (e *Engine) RegisterVehicle(name, brand, year, plate string) (models.Vehicle, error) {
	if !e.IsAdmin() {
		return models.Vehicle{}, ErrPermissionDenied
	}
	if e.plateTaken(plate, 0) {
		return models.Vehicle{}, ErrDuplicatePlate
	}
	v := models.Vehicle{
		ID:        len(e.vehicles) + 1,
		Name:      name,
		Brand:     brand,
		Year:      year,
		Plate:     plate,
		Available: true,
	}
	e.vehicles = append(e.vehicles, v)
	e.vehicleIdx[v.ID] = len(e.vehicles) - 1
	if err := e.persist(); err != nil {
		return models.Vehicle{}, err
	}
	return v, nil
}

// ModifyVehicle overwrites the supplied attributes of an existing vehicle.
// Empty fields keep their current value (partial update, never clearing).
// Admin only; a new plate may not collide with a different vehicle's.
func (e *Engine) ModifyVehicle(id int, name, brand, year, plate string) (models.Vehicle, error) {
	if !e.IsAdmin() {
		return models.Vehicle{}, ErrPermissionDenied
	}
	i, ok := e.vehicleIdx[id]
	if !ok {
		return models.Vehicle{}, ErrNotFound
	}
	if plate != "" && e.plateTaken(plate, id) {
		return models.Vehicle{}, ErrDuplicatePlate
	}

	v := &e.vehicles[i]
	if name != "" {
		v.Name = name
	}
	if brand != "" {
		v.Brand = brand
	}
	if year != "" {
		v.Year = year
	}
	if plate != "" {
		v.Plate = plate
	}
	if err := e.persist(); err != nil {
		return models.Vehicle{}, err
	}
	return *v, nil
}

// ListVehicles returns the fleet in insertion order.
func (e *Engine) ListVehicles() []models.Vehicle {
	out := make([]models.Vehicle, len(e.vehicles))
	copy(out, e.vehicles)
	return out
}

// plateTaken reports whether any vehicle other than excludeID carries the
// plate, ignoring case. excludeID 0 checks the whole fleet.
func (e *Engine) plateTaken(plate string, excludeID int) bool {
	for _, v := range e.vehicles {
		if v.ID != excludeID && strings.EqualFold(v.Plate, plate) {
			return true
		}
	}
	return false
}
