package core

import "errors"

// Domain errors the web layer maps onto HTTP statuses.
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidJoinDate = errors.New("invalid dateOfJoining format")
	ErrMissingFields   = errors.New("all fields are required")
	ErrAlreadyMarked   = errors.New("attendance already marked for today")
	ErrEmailExists     = errors.New("email already registered")
	ErrResetExpired    = errors.New("reset token expired or already used")
)
