package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/constants"
	"skyward-va/concourse/internal/logging"
	"skyward-va/concourse/internal/metrics"
	"skyward-va/concourse/internal/models/dtos"
	models "skyward-va/concourse/internal/models/gorm"
)

const flightListCacheKey = string(constants.CachePrefixFlightList) + "all"

// FlightService manages the flight schedule: administrative CRUD with the
// inventory guards, and the periodic sweep of long-departed flights.
type FlightService struct {
	db      *gorm.DB
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
}

func NewFlightService(db *gorm.DB, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *FlightService {
	return &FlightService{
		db:      db,
		cache:   cache,
		metrics: metricsReg,
	}
}

// List returns all flights, served from cache when warm.
func (s *FlightService) List(ctx context.Context) ([]models.Flight, error) {
	if s.cache != nil {
		if val, found := s.cache.Get(flightListCacheKey); found {
			if flights, ok := val.([]models.Flight); ok {
				return flights, nil
			}
			// A different cache backend may have round-tripped the value
			// through JSON; fall through to the database.
		}
	}

	var flights []models.Flight
	if err := s.db.WithContext(ctx).Order("departure").Find(&flights).Error; err != nil {
		return nil, fmt.Errorf("flight list failed: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(flightListCacheKey, flights, 30*time.Second)
	}

	return flights, nil
}

// Get returns a single flight by id.
func (s *FlightService) Get(ctx context.Context, flightID string) (*models.Flight, error) {
	var flight models.Flight
	if err := s.db.WithContext(ctx).First(&flight, "id = ?", flightID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrFlightNotFound
		}
		return nil, fmt.Errorf("flight lookup failed: %w", err)
	}
	return &flight, nil
}

// Create registers a new flight with an empty inventory.
func (s *FlightService) Create(ctx context.Context, req dtos.UpsertFlightReq) (*models.Flight, error) {
	departure, err := parseDeparture(req.Departure)
	if err != nil {
		return nil, err
	}
	if req.Seats <= 0 {
		return nil, fmt.Errorf("seats must be positive, got %d", req.Seats)
	}

	flight := models.Flight{
		ID:           req.ID,
		Origin:       req.Origin,
		Destination:  req.Destination,
		Aircraft:     req.Aircraft,
		Departure:    departure,
		Seats:        req.Seats,
		Booked:       0,
		Registration: req.Registration,
	}

	if err := s.db.WithContext(ctx).Create(&flight).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, constants.ErrDuplicateKey
		}
		return nil, fmt.Errorf("flight insert failed: %w", err)
	}

	s.invalidate()
	logging.Info("flight created", "flight_id", flight.ID, "seats", flight.Seats)

	return &flight, nil
}

// Update edits a flight. Capacity may not drop below the live booked count
// and the new departure may not be in the past; both are enforced here, at
// edit time, not at reservation time.
func (s *FlightService) Update(ctx context.Context, flightID string, req dtos.UpsertFlightReq) (*models.Flight, error) {
	departure, err := parseDeparture(req.Departure)
	if err != nil {
		return nil, err
	}
	if departure.Before(time.Now()) {
		return nil, fmt.Errorf("departure must be in the future: %w", constants.ErrConflict)
	}

	var updated models.Flight
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flight models.Flight
		if err := tx.First(&flight, "id = ?", flightID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constants.ErrFlightNotFound
			}
			return fmt.Errorf("flight lookup failed: %w", err)
		}

		if req.Seats < flight.Booked {
			return fmt.Errorf("cannot reduce seats below booked count %d: %w",
				flight.Booked, constants.ErrConflict)
		}

		flight.Origin = req.Origin
		flight.Destination = req.Destination
		flight.Aircraft = req.Aircraft
		flight.Departure = departure
		flight.Seats = req.Seats
		flight.Registration = req.Registration

		if err := tx.Save(&flight).Error; err != nil {
			return fmt.Errorf("flight update failed: %w", err)
		}

		updated = flight
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate()
	return &updated, nil
}

// Delete cancels a flight and cascades to its bookings in one transaction.
func (s *FlightService) Delete(ctx context.Context, flightID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flight models.Flight
		if err := tx.First(&flight, "id = ?", flightID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constants.ErrFlightNotFound
			}
			return fmt.Errorf("flight lookup failed: %w", err)
		}

		if err := tx.Delete(&models.Booking{}, "flight_id = ?", flightID).Error; err != nil {
			return fmt.Errorf("cascade booking delete failed: %w", err)
		}
		if err := tx.Delete(&models.Flight{}, "id = ?", flightID).Error; err != nil {
			return fmt.Errorf("flight delete failed: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate()
	logging.Info("flight cancelled", "flight_id", flightID)

	return nil
}

// SweepDeparted removes flights that departed more than the grace interval
// ago, cascading to their bookings. One transaction per sweep run.
func (s *FlightService) SweepDeparted(ctx context.Context) (*dtos.SweepResult, error) {
	cutoff := time.Now().Add(-constants.SweepGrace)
	result := &dtos.SweepResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.Flight{}).
			Where("departure < ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("sweep scan failed: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		res := tx.Delete(&models.Booking{}, "flight_id IN ?", ids)
		if res.Error != nil {
			return fmt.Errorf("sweep booking delete failed: %w", res.Error)
		}
		result.BookingsDeleted = int(res.RowsAffected)

		res = tx.Delete(&models.Flight{}, "id IN ?", ids)
		if res.Error != nil {
			return fmt.Errorf("sweep flight delete failed: %w", res.Error)
		}
		result.FlightsDeleted = int(res.RowsAffected)
		result.FlightIDs = ids

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.FlightsDeleted > 0 {
		s.invalidate()
		if s.metrics != nil {
			s.metrics.SweptFlightsTotal.Add(float64(result.FlightsDeleted))
		}
		logging.Info("departed flights swept",
			"flights", result.FlightsDeleted,
			"bookings", result.BookingsDeleted,
		)
	}

	return result, nil
}

func (s *FlightService) invalidate() {
	if s.cache != nil {
		s.cache.Delete(flightListCacheKey)
	}
}

func parseDeparture(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("departure is required")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("departure must be RFC3339: %w", err)
	}
	return t, nil
}
