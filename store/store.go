package store

import (
	"errors"

	"rental-ledger/models"
)

// ErrInvalidRecord marks a persisted record that is missing a required
// field. Loaders report it wrapped with the offending record's position.
var ErrInvalidRecord = errors.New("invalid record")

// Snapshot is the full persisted state of the ledger. The engine rewrites
// it in its entirety on every successful mutation.
type Snapshot struct {
	Users    []models.User
	Vehicles []models.Vehicle
	Rentals  []models.Rental
}

// Store is the persistence boundary consumed by the ledger engine.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}
