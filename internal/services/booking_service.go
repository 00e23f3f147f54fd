package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"skyward-va/concourse/internal/constants"
	"skyward-va/concourse/internal/logging"
	"skyward-va/concourse/internal/metrics"
	"skyward-va/concourse/internal/models/dtos"
	models "skyward-va/concourse/internal/models/gorm"
)

// BookingService orchestrates the booking lifecycle: seat reservation,
// booking persistence and the booking bonus all commit or roll back as one
// unit. No booking may exist without a reserved seat, and no reserved seat
// without a booking.
type BookingService struct {
	db      *gorm.DB
	metrics *metrics.MetricsRegistry
}

func NewBookingService(db *gorm.DB, metricsReg *metrics.MetricsRegistry) *BookingService {
	return &BookingService{
		db:      db,
		metrics: metricsReg,
	}
}

// CreateBooking books a seat on a flight for a user.
//
// Order inside the transaction: duplicate-booking check, flight existence,
// guarded seat increment, booking insert (confirmation code regenerated on
// collision), 100-point booking bonus with tier recompute. Any failure after
// the seat increment rolls the reservation back.
func (s *BookingService) CreateBooking(ctx context.Context, userID, flightID string) (*models.Booking, error) {
	var booking models.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Booking
		err := tx.Where("user_id = ? AND flight_id = ?", userID, flightID).First(&existing).Error
		if err == nil {
			return constants.ErrDuplicateBooking
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("duplicate check failed: %w", err)
		}

		var flight models.Flight
		if err := tx.First(&flight, "id = ?", flightID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constants.ErrFlightNotFound
			}
			return fmt.Errorf("flight lookup failed: %w", err)
		}

		// Atomic check-and-increment: the availability check and the
		// increment are a single statement, so two concurrent requests can
		// never both pass on the last seat.
		res := tx.Model(&models.Flight{}).
			Where("id = ? AND booked < seats", flightID).
			UpdateColumn("booked", gorm.Expr("booked + 1"))
		if res.Error != nil {
			return fmt.Errorf("seat reservation failed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return constants.ErrNoSeatsAvailable
		}

		now := time.Now().UTC()
		booking = models.Booking{
			ID:       fmt.Sprintf("%s-%d", flightID, now.UnixMilli()),
			UserID:   userID,
			FlightID: flightID,
			BookedAt: now,
		}

		var insertErr error
		for attempt := 0; attempt < confirmationRetries; attempt++ {
			booking.ConfirmationCode = GenerateConfirmationCode()
			insertErr = tx.Create(&booking).Error
			if insertErr == nil {
				break
			}
			if !isDuplicateKey(insertErr) {
				return fmt.Errorf("booking insert failed: %w", insertErr)
			}
			if !strings.Contains(insertErr.Error(), "confirmation") {
				// The (user, flight) unique index fired: a concurrent
				// request won the race for this pair.
				return constants.ErrDuplicateBooking
			}
			logging.Warn("confirmation code collision, regenerating",
				"flight_id", flightID, "attempt", attempt+1)
		}
		if insertErr != nil {
			return fmt.Errorf("confirmation code space exhausted after %d attempts: %w",
				confirmationRetries, constants.ErrDuplicateKey)
		}

		if _, err := applyAward(tx, userID, constants.BookingBonusPoints, false); err != nil {
			return fmt.Errorf("booking bonus failed: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreatedTotal.Inc()
	}
	logging.Info("booking created",
		"booking_id", booking.ID,
		"flight_id", flightID,
		"user_id", userID,
	)

	return &booking, nil
}

// CancelBooking removes a booking and releases its seat. Only the owner may
// cancel, and only before departure. A booking whose flight was removed
// out-of-band is deleted without touching inventory.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, requestingUserID string) error {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return constants.ErrNotFound
		}
		return fmt.Errorf("booking lookup failed: %w", err)
	}

	if booking.UserID != requestingUserID {
		return constants.ErrForbidden
	}

	var flight models.Flight
	err := s.db.WithContext(ctx).First(&flight, "id = ?", booking.FlightID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Flight removed out-of-band: no seat to release.
		res := s.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", bookingID)
		if res.Error != nil {
			return fmt.Errorf("orphan booking delete failed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("orphan booking %s survived delete: %w", bookingID, constants.ErrFatal)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("flight lookup failed: %w", err)
	}

	if flight.Departed(time.Now()) {
		return constants.ErrConflict
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Booking{}, "id = ?", bookingID)
		if res.Error != nil {
			return fmt.Errorf("booking delete failed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("booking %s survived delete: %w", bookingID, constants.ErrFatal)
		}

		// The booking existed, so booked must be positive; a zero counter
		// here means inventory and bookings diverged.
		rel := tx.Model(&models.Flight{}).
			Where("id = ? AND booked > 0", booking.FlightID).
			UpdateColumn("booked", gorm.Expr("booked - 1"))
		if rel.Error != nil {
			return fmt.Errorf("seat release failed: %w", rel.Error)
		}
		if rel.RowsAffected == 0 {
			return fmt.Errorf("seat release on empty flight %s: %w", booking.FlightID, constants.ErrFatal)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.BookingsCancelledTotal.Inc()
	}
	logging.Info("booking cancelled", "booking_id", bookingID, "user_id", requestingUserID)

	return nil
}

// ListForUser returns a user's bookings joined with their flights and a
// departure status label. Bookings whose flight is gone carry a nil flight
// and an Unknown status.
func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]dtos.BookingWithFlight, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("booked_at").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("booking list failed: %w", err)
	}

	if len(bookings) == 0 {
		return []dtos.BookingWithFlight{}, nil
	}

	flightIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		flightIDs = append(flightIDs, b.FlightID)
	}

	var flights []models.Flight
	if err := s.db.WithContext(ctx).Where("id IN ?", flightIDs).Find(&flights).Error; err != nil {
		return nil, fmt.Errorf("flight list failed: %w", err)
	}

	byID := make(map[string]models.Flight, len(flights))
	for _, f := range flights {
		byID[f.ID] = f
	}

	now := time.Now()
	out := make([]dtos.BookingWithFlight, 0, len(bookings))
	for _, b := range bookings {
		entry := dtos.BookingWithFlight{Booking: b, Status: dtos.FlightStatusUnknown}
		if f, ok := byID[b.FlightID]; ok {
			flight := f
			entry.Flight = &flight
			if flight.Departed(now) {
				entry.Status = dtos.FlightStatusDeparted
			} else {
				entry.Status = dtos.FlightStatusUpcoming
			}
		}
		out = append(out, entry)
	}

	return out, nil
}

// GetByConfirmation resolves a confirmation code scoped to its owner.
func (s *BookingService) GetByConfirmation(ctx context.Context, code, userID string) (*dtos.BookingWithFlight, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Where("confirmation_code = ? AND user_id = ?", code, userID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrNotFound
		}
		return nil, fmt.Errorf("booking lookup failed: %w", err)
	}

	var flight models.Flight
	if err := s.db.WithContext(ctx).First(&flight, "id = ?", booking.FlightID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrNotFound
		}
		return nil, fmt.Errorf("flight lookup failed: %w", err)
	}

	status := dtos.FlightStatusUpcoming
	if flight.Departed(time.Now()) {
		status = dtos.FlightStatusDeparted
	}

	return &dtos.BookingWithFlight{
		Booking: booking,
		Flight:  &flight,
		Status:  status,
	}, nil
}
