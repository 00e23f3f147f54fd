package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/models/dtos"
	"skyward-va/concourse/internal/services"
)

// ListFlightsHandler handles GET /flights
func ListFlightsHandler(flightSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flights, err := flightSvc.List(r.Context())
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Flights fetched", flights)
	}
}

// GetFlightHandler handles GET /flights/{id}
func GetFlightHandler(flightSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flightID := chi.URLParam(r, "id")
		flight, err := flightSvc.Get(r.Context(), flightID)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Flight fetched", flight)
	}
}

// CreateFlightHandler handles POST /flights (staff)
func CreateFlightHandler(flightSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpsertFlightReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "invalid flight payload", http.StatusBadRequest)
			return
		}
		if req.ID == "" || req.Origin == "" || req.Destination == "" || req.Departure == "" {
			common.RespondError(w, initTime, nil, "id, from, to and departure are required", http.StatusBadRequest)
			return
		}

		flight, err := flightSvc.Create(r.Context(), req)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Flight created", flight, http.StatusCreated)
	}
}

// UpdateFlightHandler handles PUT /changeflight/{id} (staff)
func UpdateFlightHandler(flightSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flightID := chi.URLParam(r, "id")
		var req dtos.UpsertFlightReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "invalid flight payload", http.StatusBadRequest)
			return
		}

		flight, err := flightSvc.Update(r.Context(), flightID, req)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Flight updated", flight)
	}
}

// DeleteFlightHandler handles DELETE /changeflight/{id} (staff)
func DeleteFlightHandler(flightSvc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flightID := chi.URLParam(r, "id")
		if err := flightSvc.Delete(r.Context(), flightID); err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Flight deleted", nil)
	}
}

// FlightStatusHandler handles GET /status/{flightId}
func FlightStatusHandler(statusSvc *services.StatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flightID := chi.URLParam(r, "flightId")
		status, err := statusSvc.Get(r.Context(), flightID)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Flight status fetched", status)
	}
}
