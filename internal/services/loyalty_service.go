package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"skyward-va/concourse/internal/constants"
	"skyward-va/concourse/internal/logging"
	"skyward-va/concourse/internal/metrics"
	"skyward-va/concourse/internal/models/dtos"
	models "skyward-va/concourse/internal/models/gorm"
)

// LoyaltyService owns the points ledger and derived tier state. Every
// balance mutation recomputes the tier before its transaction commits, so
// tier == TierFor(points) holds at every observable moment.
type LoyaltyService struct {
	db      *gorm.DB
	metrics *metrics.MetricsRegistry

	// batchLimiter paces bulk operations. Backpressure only; correctness
	// never depends on it.
	batchLimiter *rate.Limiter
}

func NewLoyaltyService(db *gorm.DB, metricsReg *metrics.MetricsRegistry) *LoyaltyService {
	return &LoyaltyService{
		db:           db,
		metrics:      metricsReg,
		batchLimiter: rate.NewLimiter(rate.Limit(50), 50),
	}
}

// applyAward adds points inside the caller's transaction, optionally bumps
// flights-attended, and recomputes the tier. Shared with BookingService for
// the booking bonus.
func applyAward(tx *gorm.DB, userID string, points int, bumpAttended bool) (*dtos.LoyaltyResult, error) {
	updates := map[string]interface{}{
		"points": gorm.Expr("points + ?", points),
	}
	if bumpAttended {
		updates["flights_attended"] = gorm.Expr("flights_attended + 1")
	}

	res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("points update failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, constants.ErrUserNotFound
	}

	return recomputeTier(tx, userID)
}

// applyRemoval floors the balance at zero, then recomputes the tier.
func applyRemoval(tx *gorm.DB, userID string, points int) (*dtos.LoyaltyResult, error) {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	newPoints := user.Points - points
	if newPoints < 0 {
		newPoints = 0
	}

	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("points", newPoints).Error; err != nil {
		return nil, fmt.Errorf("points update failed: %w", err)
	}

	return recomputeTier(tx, userID)
}

func recomputeTier(tx *gorm.DB, userID string) (*dtos.LoyaltyResult, error) {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("tier recompute lookup failed: %w", err)
	}

	tier := TierFor(user.Points)
	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("tier", tier).Error; err != nil {
		return nil, fmt.Errorf("tier update failed: %w", err)
	}

	return &dtos.LoyaltyResult{
		UserID:          userID,
		NewPoints:       user.Points,
		NewTier:         tier.String(),
		FlightsAttended: user.FlightsAttended,
	}, nil
}

// Award adds points to a user, optionally counting a flight attended.
func (s *LoyaltyService) Award(ctx context.Context, userID string, points int, bumpAttended bool) (*dtos.LoyaltyResult, error) {
	if points < 0 {
		return nil, fmt.Errorf("points must be non-negative, got %d", points)
	}

	var result *dtos.LoyaltyResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = applyAward(tx, userID, points, bumpAttended)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PointsAwardedTotal.Add(float64(points))
	}

	return result, nil
}

// Remove deducts points from a user, flooring at zero.
func (s *LoyaltyService) Remove(ctx context.Context, userID string, points int) (*dtos.LoyaltyResult, error) {
	if points <= 0 {
		return nil, fmt.Errorf("points must be positive, got %d", points)
	}

	var result *dtos.LoyaltyResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = applyRemoval(tx, userID, points)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AwardForFlight awards points to every user booked on a flight, bumping
// each one's flights-attended counter. Per-user failures are collected and
// never abort the batch; the successful updates commit together.
func (s *LoyaltyService) AwardForFlight(ctx context.Context, flightID string, points int) (*dtos.BatchResult, error) {
	if points <= 0 {
		return nil, fmt.Errorf("points must be positive, got %d", points)
	}
	return s.runBatchForFlight(ctx, flightID, func(tx *gorm.DB, userID string) (*dtos.LoyaltyResult, error) {
		return applyAward(tx, userID, points, true)
	})
}

// RemoveForFlight deducts points from every user booked on a flight.
func (s *LoyaltyService) RemoveForFlight(ctx context.Context, flightID string, points int) (*dtos.BatchResult, error) {
	if points <= 0 {
		return nil, fmt.Errorf("points must be positive, got %d", points)
	}
	return s.runBatchForFlight(ctx, flightID, func(tx *gorm.DB, userID string) (*dtos.LoyaltyResult, error) {
		return applyRemoval(tx, userID, points)
	})
}

func (s *LoyaltyService) runBatchForFlight(
	ctx context.Context,
	flightID string,
	apply func(tx *gorm.DB, userID string) (*dtos.LoyaltyResult, error),
) (*dtos.BatchResult, error) {
	result := &dtos.BatchResult{UpdatedUsers: []dtos.LoyaltyResult{}}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userIDs []string
		if err := tx.Model(&models.Booking{}).
			Where("flight_id = ?", flightID).
			Pluck("user_id", &userIDs).Error; err != nil {
			return fmt.Errorf("booking scan failed: %w", err)
		}
		if len(userIDs) == 0 {
			return constants.ErrNotFound
		}

		for _, userID := range userIDs {
			// Bounded pacing; batches run to completion regardless.
			_ = s.batchLimiter.Wait(ctx)

			// Per-user savepoint: one bad row must not poison the outer
			// transaction for the rows that succeed.
			err := tx.Transaction(func(itemTx *gorm.DB) error {
				res, err := apply(itemTx, userID)
				if err != nil {
					return err
				}
				result.UpdatedUsers = append(result.UpdatedUsers, *res)
				return nil
			})
			if err != nil {
				result.FailureCount++
				result.Errors = append(result.Errors,
					fmt.Sprintf("user %s: %v", userID, err))
				continue
			}
			result.SuccessCount++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info("flight points batch finished",
		"flight_id", flightID,
		"success", result.SuccessCount,
		"failed", result.FailureCount,
	)

	return result, nil
}

// RefreshAllTiers recomputes every user's tier from their current balance.
// Repairs drift after manual data edits; a no-op on a consistent ledger.
func (s *LoyaltyService) RefreshAllTiers(ctx context.Context) (*dtos.BatchResult, error) {
	result := &dtos.BatchResult{UpdatedUsers: []dtos.LoyaltyResult{}}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Find(&users).Error; err != nil {
			return fmt.Errorf("user scan failed: %w", err)
		}
		if len(users) == 0 {
			return constants.ErrNotFound
		}

		for _, user := range users {
			_ = s.batchLimiter.Wait(ctx)

			tier := TierFor(user.Points)
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
				UpdateColumn("tier", tier).Error; err != nil {
				result.FailureCount++
				result.Errors = append(result.Errors,
					fmt.Sprintf("user %s: %v", user.ID, err))
				continue
			}
			result.SuccessCount++
			result.UpdatedUsers = append(result.UpdatedUsers, dtos.LoyaltyResult{
				UserID:    user.ID,
				NewPoints: user.Points,
				NewTier:   tier.String(),
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// PurchaseEarlyBird spends points on the early check-in entitlement. The
// debit and the flag flip are one guarded statement: the balance check, the
// double-purchase check and the mutation cannot interleave with a
// concurrent purchase.
func (s *LoyaltyService) PurchaseEarlyBird(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constants.ErrUserNotFound
			}
			return fmt.Errorf("user lookup failed: %w", err)
		}

		if user.HasEarlyBird {
			return constants.ErrAlreadyPurchased
		}
		if user.Points < constants.EarlyBirdCost {
			return constants.ErrInsufficient
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND has_early_bird = ? AND points >= ?", userID, false, constants.EarlyBirdCost).
			Updates(map[string]interface{}{
				"points":         gorm.Expr("points - ?", constants.EarlyBirdCost),
				"has_early_bird": true,
			})
		if res.Error != nil {
			return fmt.Errorf("early bird purchase failed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return constants.ErrConflict
		}

		_, err := recomputeTier(tx, userID)
		return err
	})
}
