package constants

import "errors"

// Sentinel errors for the booking/loyalty engine. Handlers map these to
// status codes with errors.Is; anything else surfaces as a generic 500.
var (
	ErrNotFound         = errors.New("not found")
	ErrFlightNotFound   = errors.New("flight not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateBooking = errors.New("user already has a booking for this flight")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrNoSeatsAvailable = errors.New("no seats available")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("flight has already departed")
	ErrTooEarly         = errors.New("check-in window not open")
	ErrInsufficient     = errors.New("insufficient points")
	ErrAlreadyPurchased = errors.New("upgrade already purchased")

	// ErrFatal marks an internal consistency violation, e.g. a delete that
	// reported success while the row is still readable.
	ErrFatal = errors.New("internal consistency violation")
)
