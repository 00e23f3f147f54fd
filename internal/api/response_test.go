package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"skyward-va/concourse/internal/constants"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{constants.ErrNotFound, http.StatusNotFound},
		{constants.ErrFlightNotFound, http.StatusNotFound},
		{constants.ErrUserNotFound, http.StatusNotFound},
		{constants.ErrDuplicateBooking, http.StatusBadRequest},
		{constants.ErrNoSeatsAvailable, http.StatusBadRequest},
		{constants.ErrTooEarly, http.StatusBadRequest},
		{constants.ErrInsufficient, http.StatusBadRequest},
		{constants.ErrAlreadyPurchased, http.StatusBadRequest},
		{constants.ErrForbidden, http.StatusForbidden},
		{constants.ErrConflict, http.StatusConflict},
		{errors.New("driver exploded"), http.StatusInternalServerError},
		// Wrapped sentinels unwrap to the same status.
		{fmt.Errorf("cannot reduce seats below booked count 3: %w", constants.ErrConflict), http.StatusConflict},
	}

	for _, tc := range cases {
		if got, _ := statusForError(tc.err); got != tc.want {
			t.Errorf("statusForError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}

	// The internal-error message must never leak driver detail.
	_, msg := statusForError(errors.New("pq: password authentication failed"))
	if msg != "Internal server error" {
		t.Errorf("internal error message %q leaks detail", msg)
	}
}
