package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skyward-va/concourse/internal/auth"
	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/db/repositories"
	"skyward-va/concourse/internal/models/dtos"
	"skyward-va/concourse/internal/services"
)

// CreateBookingHandler handles POST /book
func CreateBookingHandler(bookingSvc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.CreateBookingReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FlightID == "" {
			common.RespondError(w, initTime, err, "flightId is required", http.StatusBadRequest)
			return
		}

		booking, err := bookingSvc.CreateBooking(r.Context(), claims.UserID, req.FlightID)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Booking confirmed", booking, http.StatusCreated)
	}
}

// ListBookingsHandler handles GET /bookings
func ListBookingsHandler(bookingSvc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		bookings, err := bookingSvc.ListForUser(r.Context(), claims.UserID)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Bookings fetched", bookings)
	}
}

// AttendedCountHandler handles GET /bookings/attended
func AttendedCountHandler(userRepo *repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		count, err := userRepo.GetAttendedCount(r.Context(), claims.UserID)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Attended count fetched", map[string]int{
			"flightsAttended": count,
		})
	}
}

// BookingByConfirmationHandler handles GET /bookings/{code}
func BookingByConfirmationHandler(bookingSvc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		code := chi.URLParam(r, "code")
		if code == "" {
			common.RespondError(w, initTime, nil, "confirmation code is required", http.StatusBadRequest)
			return
		}

		booking, err := bookingSvc.GetByConfirmation(r.Context(), code, claims.UserID)
		if err != nil {
			status, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, status)
			return
		}

		common.RespondSuccess(w, initTime, "Booking fetched", booking)
	}
}

// CancelBookingHandler handles POST /bookings/cancel
func CancelBookingHandler(bookingSvc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.CancelBookingReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookingID == "" {
			common.RespondError(w, initTime, err, "bookingId is required", http.StatusBadRequest)
			return
		}

		if err := bookingSvc.CancelBooking(r.Context(), req.BookingID, claims.UserID); err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Booking cancelled", nil)
	}
}
