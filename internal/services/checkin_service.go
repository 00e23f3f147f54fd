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

// CheckInService gates check-in by the departure window and drives the
// boarding allocator exactly once per booking. Re-check-in refreshes the
// timestamp but never moves an assigned position.
type CheckInService struct {
	db      *gorm.DB
	signer  *common.PassSignerService
	metrics *metrics.MetricsRegistry
}

func NewCheckInService(db *gorm.DB, signer *common.PassSignerService, metricsReg *metrics.MetricsRegistry) *CheckInService {
	return &CheckInService{
		db:      db,
		signer:  signer,
		metrics: metricsReg,
	}
}

// CheckIn checks a booking in by confirmation code and returns the boarding
// pass record for rendering.
func (s *CheckInService) CheckIn(ctx context.Context, confirmationCode, requestingUserID string) (*dtos.BoardingPass, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		First(&booking, "confirmation_code = ?", confirmationCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrNotFound
		}
		return nil, fmt.Errorf("booking lookup failed: %w", err)
	}

	if booking.UserID != requestingUserID {
		return nil, constants.ErrForbidden
	}

	var flight models.Flight
	if err := s.db.WithContext(ctx).First(&flight, "id = ?", booking.FlightID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrNotFound
		}
		return nil, fmt.Errorf("flight lookup failed: %w", err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", requestingUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	window := constants.CheckInWindow
	if user.HasEarlyBird {
		window = constants.CheckInWindowEarlyBird
	}

	now := time.Now().UTC()
	if now.Before(flight.Departure.Add(-window)) {
		return nil, constants.ErrTooEarly
	}

	// The partial unique index on (flight_id, boarding_position) rejects a
	// concurrent check-in that claimed the same slot between our scan and
	// our write; rescan and take the next free position.
	for attempt := 0; ; attempt++ {
		group, position := booking.BoardingGroup, booking.BoardingPosition
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if !booking.CheckedIn() {
				var flightBookings []models.Booking
				if err := tx.Where("flight_id = ?", booking.FlightID).
					Find(&flightBookings).Error; err != nil {
					return fmt.Errorf("flight bookings scan failed: %w", err)
				}

				g, p := AssignBoardingPosition(flightBookings)
				group, position = &g, &p
			}

			if err := tx.Model(&models.Booking{}).
				Where("id = ?", booking.ID).
				Updates(map[string]interface{}{
					"boarding_group":    group,
					"boarding_position": position,
					"checked_in_at":     now,
				}).Error; err != nil {
				return fmt.Errorf("check-in persist failed: %w", err)
			}
			return nil
		})
		if err == nil {
			booking.BoardingGroup = group
			booking.BoardingPosition = position
			booking.CheckedInAt = &now
			break
		}
		if isDuplicateKey(err) && attempt < 2 {
			logging.Warn("boarding position taken, reassigning",
				"booking_id", booking.ID,
				"flight_id", booking.FlightID,
			)
			continue
		}
		return nil, err
	}

	pass := &dtos.BoardingPass{
		ConfirmationCode: booking.ConfirmationCode,
		FlightID:         flight.ID,
		Origin:           flight.Origin,
		Destination:      flight.Destination,
		Aircraft:         flight.Aircraft,
		Departure:        flight.Departure,
		Passenger:        user.PassengerLabel(),
		BoardingGroup:    *booking.BoardingGroup,
		BoardingPosition: *booking.BoardingPosition,
		CheckedInAt:      now,
	}

	if s.signer != nil {
		url, err := s.signer.SignPassURL(booking.ConfirmationCode, user.ID, 15*time.Minute)
		if err != nil {
			// Rendering is a collaborator concern; the check-in itself stands.
			logging.Warn("pass URL signing failed", "confirmation", booking.ConfirmationCode, "error", err.Error())
		} else {
			pass.RenderURL = "/pass/render?token=" + url
		}
	}

	if s.metrics != nil {
		s.metrics.CheckInsTotal.Inc()
	}
	logging.Info("checked in",
		"booking_id", booking.ID,
		"flight_id", flight.ID,
		"position", *booking.BoardingPosition,
	)

	return pass, nil
}

// RenderPass exchanges a signed render token for the boarding pass it names.
// Tokens are single use; a replayed or expired token fails closed.
func (s *CheckInService) RenderPass(ctx context.Context, token string) (*dtos.BoardingPass, error) {
	if s.signer == nil {
		return nil, constants.ErrNotFound
	}

	signed, err := s.signer.ValidateToken(ctx, token)
	if err != nil {
		logging.Warn("pass token rejected", "error", err.Error())
		return nil, constants.ErrForbidden
	}

	var booking models.Booking
	err = s.db.WithContext(ctx).
		First(&booking, "confirmation_code = ?", signed.ConfirmationCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrNotFound
		}
		return nil, fmt.Errorf("booking lookup failed: %w", err)
	}
	if !booking.CheckedIn() {
		return nil, constants.ErrNotFound
	}

	var flight models.Flight
	if err := s.db.WithContext(ctx).First(&flight, "id = ?", booking.FlightID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrNotFound
		}
		return nil, fmt.Errorf("flight lookup failed: %w", err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", signed.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	if err := s.signer.MarkTokenAsUsed(ctx, signed.TokenID); err != nil {
		return nil, err
	}

	return &dtos.BoardingPass{
		ConfirmationCode: booking.ConfirmationCode,
		FlightID:         flight.ID,
		Origin:           flight.Origin,
		Destination:      flight.Destination,
		Aircraft:         flight.Aircraft,
		Departure:        flight.Departure,
		Passenger:        user.PassengerLabel(),
		BoardingGroup:    *booking.BoardingGroup,
		BoardingPosition: *booking.BoardingPosition,
		CheckedInAt:      *booking.CheckedInAt,
	}, nil
}
