package dtos

import (
	"time"

	models "skyward-va/concourse/internal/models/gorm"
)

// APIResponse is the standard JSON envelope for every endpoint.
type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime string `json:"response_time,omitempty"`
	Data         any    `json:"data,omitempty"`
}

// FlightStatusLabel classifies a booking's flight relative to now.
type FlightStatusLabel string

const (
	FlightStatusUpcoming FlightStatusLabel = "Upcoming"
	FlightStatusDeparted FlightStatusLabel = "Flight has departed"
	FlightStatusUnknown  FlightStatusLabel = "Unknown"
)

// BookingWithFlight is a booking joined with its flight and a status label.
// Flight is nil when the flight was removed out-of-band.
type BookingWithFlight struct {
	Booking models.Booking    `json:"booking"`
	Flight  *models.Flight    `json:"flight"`
	Status  FlightStatusLabel `json:"status"`
}

// BoardingPass is the record handed to the external image renderer.
type BoardingPass struct {
	ConfirmationCode string    `json:"confirmationNumber"`
	FlightID         string    `json:"flightId"`
	Origin           string    `json:"from"`
	Destination      string    `json:"to"`
	Aircraft         string    `json:"aircraft"`
	Departure        time.Time `json:"departure"`
	Passenger        string    `json:"passenger"`
	BoardingGroup    string    `json:"boardingGroup"`
	BoardingPosition string    `json:"boardingPosition"`
	CheckedInAt      time.Time `json:"checkedInAt"`
	RenderURL        string    `json:"renderUrl,omitempty"`
}

// LoyaltyResult reports the outcome of a single award/remove operation.
type LoyaltyResult struct {
	UserID          string `json:"userId"`
	NewPoints       int    `json:"newPoints"`
	NewTier         string `json:"newTier"`
	FlightsAttended int    `json:"newFlightsAttended,omitempty"`
}

// BatchResult aggregates a bulk loyalty operation. Per-item failures are
// listed, never fatal to the batch.
type BatchResult struct {
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	UpdatedUsers []LoyaltyResult `json:"updatedUsers"`
	Errors       []string        `json:"errors,omitempty"`
}

// FlightStatus is the mock operational-status payload.
type FlightStatus struct {
	FlightNumber  string    `json:"flightNumber"`
	Status        string    `json:"status"`
	DepartureTime string    `json:"departureTime"`
	ArrivalTime   string    `json:"arrivalTime"`
	Gate          string    `json:"gate"`
	Terminal      string    `json:"terminal"`
	Baggage       string    `json:"baggage"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// SweepResult summarizes one departed-flight sweep run.
type SweepResult struct {
	FlightsDeleted  int      `json:"flightsDeleted"`
	BookingsDeleted int      `json:"bookingsDeleted"`
	FlightIDs       []string `json:"flightIds,omitempty"`
}
