// Package ledger implements the rental ledger engine: users, vehicles and
// rental transactions, the rules that mutate them, and the reporting
// queries computed over them. The engine owns its collections outright and
// persists a full snapshot through a store.Store after every successful
// mutation. It is deliberately not safe for concurrent use; callers own
// the locking discipline.
package ledger

import (
	"time"

	"github.com/sirupsen/logrus"

	"rental-ledger/models"
	"rental-ledger/store"
)

const (
	bootstrapUsername = "admin"
	bootstrapPassword = "admin"
)

// Engine holds the three collections in insertion order plus id indexes
// for O(1) lookup, and at most one authenticated session.
type Engine struct {
	store store.Store
	now   func() time.Time

	users    []models.User
	vehicles []models.Vehicle
	rentals  []models.Rental

	userIdx    map[string]int // username -> index into users
	vehicleIdx map[int]int    // vehicle id -> index into vehicles
	rentalIdx  map[int]int    // rental id -> index into rentals

	current int // index into users, -1 when logged out
}

// New loads persisted state from st and guarantees the bootstrap admin:
// if no admin account exists after loading, admin/admin is appended and
// persisted immediately.
func New(st store.Store) (*Engine, error) {
	snap, err := st.Load()
	if err != nil {
		return nil, err
	}

	e := &Engine{store: st, now: time.Now}
	e.reset(snap)

	if !e.hasAdmin() {
		e.appendUser(models.User{
			Username: bootstrapUsername,
			Password: bootstrapPassword,
			Role:     models.RoleAdmin,
		})
		if err := e.persist(); err != nil {
			return nil, err
		}
		logrus.Info("no admin account found, bootstrap admin created")
	}
	return e, nil
}

// reset replaces all in-memory state with the snapshot and rebuilds the
// indexes. The session is cleared.
func (e *Engine) reset(snap store.Snapshot) {
	e.users = snap.Users
	e.vehicles = snap.Vehicles
	e.rentals = snap.Rentals
	e.current = -1

	e.userIdx = make(map[string]int, len(e.users))
	for i, u := range e.users {
		e.userIdx[u.Username] = i
	}
	e.vehicleIdx = make(map[int]int, len(e.vehicles))
	for i, v := range e.vehicles {
		e.vehicleIdx[v.ID] = i
	}
	e.rentalIdx = make(map[int]int, len(e.rentals))
	for i, r := range e.rentals {
		e.rentalIdx[r.ID] = i
	}
}

func (e *Engine) hasAdmin() bool {
	for _, u := range e.users {
		if u.Role == models.RoleAdmin {
			return true
		}
	}
	return false
}

func (e *Engine) appendUser(u models.User) {
	e.users = append(e.users, u)
	e.userIdx[u.Username] = len(e.users) - 1
}

// Snapshot copies the current state into a persistable record.
func (e *Engine) Snapshot() store.Snapshot {
	snap := store.Snapshot{
		Users:    make([]models.User, len(e.users)),
		Vehicles: make([]models.Vehicle, len(e.vehicles)),
		Rentals:  make([]models.Rental, len(e.rentals)),
	}
	copy(snap.Users, e.users)
	copy(snap.Vehicles, e.vehicles)
	copy(snap.Rentals, e.rentals)
	return snap
}

// persist rewrites the backing store in full. A failure here must reach
// the caller of the mutating operation; success is never reported when
// the save failed.
func (e *Engine) persist() error {
	return e.store.Save(e.Snapshot())
}

// Login authenticates by exact username and password equality and binds
// the session to the matched user. Plaintext comparison, no lockout.
func (e *Engine) Login(username, password string) bool {
	i, ok := e.userIdx[username]
	if !ok || e.users[i].Password != password {
		return false
	}
	e.current = i
	return true
}

// Logout clears the session unconditionally.
func (e *Engine) Logout() {
	e.current = -1
}

// Resume rebinds the session to an already-authenticated username. It is
// the presentation layer's hook for restoring the acting user on each
// request; it performs no credential check.
func (e *Engine) Resume(username string) bool {
	i, ok := e.userIdx[username]
	if !ok {
		return false
	}
	e.current = i
	return true
}

// CurrentUser returns the session's user, if any.
func (e *Engine) CurrentUser() (models.User, bool) {
	if e.current < 0 {
		return models.User{}, false
	}
	return e.users[e.current], true
}

// IsAdmin reports whether a session exists and carries the admin role.
func (e *Engine) IsAdmin() bool {
	return e.current >= 0 && e.users[e.current].Role == models.RoleAdmin
}

// CheckPassword verifies a credential pair without touching the session.
// Used by the destructive-reset gate to re-verify the admin password.
func (e *Engine) CheckPassword(username, password string) bool {
	i, ok := e.userIdx[username]
	return ok && e.users[i].Password == password
}

// CreateUser appends a new account. Admin only; usernames are unique
// case-sensitively and no shape or strength validation is applied.
func (e *Engine) CreateUser(username, password string, role models.Role) error {
	if !e.IsAdmin() {
		return ErrPermissionDenied
	}
	if _, exists := e.userIdx[username]; exists {
		return ErrDuplicateUser
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	e.appendUser(models.User{Username: username, Password: password, Role: role})
	return e.persist()
}

// ClearAll empties every collection, recreates the bootstrap admin and
// persists. The engine applies no gating of its own here; the caller is
// responsible for the admin re-confirmation flow.
func (e *Engine) ClearAll() error {
	e.reset(store.Snapshot{})
	e.appendUser(models.User{
		Username: bootstrapUsername,
		Password: bootstrapPassword,
		Role:     models.RoleAdmin,
	})
	return e.persist()
}
