package services

import (
	"context"
	"time"

	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/constants"
	"skyward-va/concourse/internal/models/dtos"
)

// StatusService serves operational flight status. The upstream feed does not
// exist yet, so every flight reports a canned on-time status.
// TODO: replace the canned payload once the ops data feed lands.
type StatusService struct {
	flights *FlightService
	cache   common.CacheInterface
}

func NewStatusService(flights *FlightService, cache common.CacheInterface) *StatusService {
	return &StatusService{
		flights: flights,
		cache:   cache,
	}
}

// Get returns the status for a flight, verifying the flight exists first.
// The warm worker pre-fills the cache slot; a hit skips the flight lookup.
func (s *StatusService) Get(ctx context.Context, flightID string) (*dtos.FlightStatus, error) {
	if s.cache != nil {
		if val, ok := s.cache.Get(CacheKey(flightID)); ok {
			if status, ok := val.(*dtos.FlightStatus); ok {
				return status, nil
			}
		}
	}

	if _, err := s.flights.Get(ctx, flightID); err != nil {
		return nil, err
	}

	return &dtos.FlightStatus{
		FlightNumber:  flightID,
		Status:        "On Time",
		DepartureTime: "08:00",
		ArrivalTime:   "10:30",
		Gate:          "A12",
		Terminal:      "1",
		Baggage:       "Carousel 3",
		LastUpdated:   time.Now().UTC(),
	}, nil
}

// CacheKey names the cache slot the warm worker fills for a flight.
func CacheKey(flightID string) string {
	return string(constants.CachePrefixFlightStatus) + flightID
}
