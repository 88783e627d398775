package ledger

import "errors"

// Business-rule failures, one sentinel per kind so callers can match with
// errors.Is and render them however they like. Store I/O failures are not
// listed here; those propagate wrapped from the persistence boundary.
var (
	ErrPermissionDenied   = errors.New("permission denied: admin only")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrDuplicatePlate     = errors.New("another vehicle already has this plate")
	ErrNotFound           = errors.New("not found")
	ErrVehicleUnavailable = errors.New("vehicle unavailable")
	ErrAlreadyReturned    = errors.New("rental not found or already returned")
)
