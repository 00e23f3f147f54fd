package api

import (
	"encoding/json"
	"net/http"
	"time"

	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/models/dtos"
	"skyward-va/concourse/internal/services"
)

// AwardPointsHandler handles POST /admin/awardpoints (staff)
func AwardPointsHandler(loyaltySvc *services.LoyaltyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AwardPointsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Points <= 0 {
			common.RespondError(w, initTime, err, "userId and a positive points value are required", http.StatusBadRequest)
			return
		}

		// Single-user awards adjust the balance only; flights-attended moves
		// with the per-flight bulk award.
		result, err := loyaltySvc.Award(r.Context(), req.UserID, req.Points, false)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Points awarded", result)
	}
}

// RemovePointsHandler handles POST /admin/removepoints (staff)
func RemovePointsHandler(loyaltySvc *services.LoyaltyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RemovePointsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Points <= 0 {
			common.RespondError(w, initTime, err, "userId and a positive points value are required", http.StatusBadRequest)
			return
		}

		result, err := loyaltySvc.Remove(r.Context(), req.UserID, req.Points)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Points removed", result)
	}
}

// AwardFlightPointsHandler handles POST /admin/awardflightpoints (staff)
func AwardFlightPointsHandler(loyaltySvc *services.LoyaltyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightPointsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FlightID == "" || req.Points <= 0 {
			common.RespondError(w, initTime, err, "flightId and a positive points value are required", http.StatusBadRequest)
			return
		}

		result, err := loyaltySvc.AwardForFlight(r.Context(), req.FlightID, req.Points)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Flight points awarded", result)
	}
}

// RemoveFlightPointsHandler handles POST /admin/removeflightpoints (staff)
func RemoveFlightPointsHandler(loyaltySvc *services.LoyaltyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightPointsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FlightID == "" || req.Points <= 0 {
			common.RespondError(w, initTime, err, "flightId and a positive points value are required", http.StatusBadRequest)
			return
		}

		result, err := loyaltySvc.RemoveForFlight(r.Context(), req.FlightID, req.Points)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Flight points removed", result)
	}
}

// RefreshTiersHandler handles POST /admin/refresh-tiers (staff)
func RefreshTiersHandler(loyaltySvc *services.LoyaltyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		result, err := loyaltySvc.RefreshAllTiers(r.Context())
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Tiers refreshed", result)
	}
}
