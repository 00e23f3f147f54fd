package api

import (
	"errors"
	"net/http"

	"skyward-va/concourse/internal/constants"
)

// statusForError maps service sentinels to an HTTP status and a message safe
// to hand to the client. Anything unmatched is a 500 with a generic message.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, constants.ErrFlightNotFound):
		return http.StatusNotFound, "Flight not found"
	case errors.Is(err, constants.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, constants.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, constants.ErrDuplicateBooking):
		return http.StatusBadRequest, "You already have a booking on this flight"
	case errors.Is(err, constants.ErrNoSeatsAvailable):
		return http.StatusBadRequest, "No seats available on this flight"
	case errors.Is(err, constants.ErrTooEarly):
		return http.StatusBadRequest, "Check-in window is not open yet"
	case errors.Is(err, constants.ErrInsufficient):
		return http.StatusBadRequest, "Insufficient points balance"
	case errors.Is(err, constants.ErrAlreadyPurchased):
		return http.StatusBadRequest, "Upgrade already purchased"
	case errors.Is(err, constants.ErrDuplicateKey):
		return http.StatusBadRequest, "Duplicate identifier"
	case errors.Is(err, constants.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, constants.ErrConflict):
		return http.StatusConflict, "Operation conflicts with current state"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
