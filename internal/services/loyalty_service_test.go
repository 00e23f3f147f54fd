package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"skyward-va/concourse/internal/constants"
	models "skyward-va/concourse/internal/models/gorm"
)

func TestLoyaltyService_Award_Promotion(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", 19999)

	result, err := svc.Award(ctx, "u1", 1, false)
	if err != nil {
		t.Fatalf("Award failed: %v", err)
	}
	if result.NewPoints != 20000 {
		t.Errorf("points = %d, want 20000", result.NewPoints)
	}
	if result.NewTier != string(constants.TierAList) {
		t.Errorf("tier = %q, want %q", result.NewTier, constants.TierAList)
	}

	var user models.User
	db.First(&user, "id = ?", "u1")
	if user.Tier != constants.TierAList {
		t.Errorf("persisted tier = %q, want %q", user.Tier, constants.TierAList)
	}
}

func TestLoyaltyService_Award_BumpsAttended(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)

	seedUser(t, db, "u1", 0)

	result, err := svc.Award(context.Background(), "u1", 500, true)
	if err != nil {
		t.Fatalf("Award failed: %v", err)
	}
	if result.FlightsAttended != 1 {
		t.Errorf("flightsAttended = %d, want 1", result.FlightsAttended)
	}
}

func TestLoyaltyService_Award_UserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)

	if _, err := svc.Award(context.Background(), "ghost", 100, false); !errors.Is(err, constants.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestLoyaltyService_Remove_FloorsAtZero(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)

	seedUser(t, db, "u1", 100)

	result, err := svc.Remove(context.Background(), "u1", 20000)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if result.NewPoints != 0 {
		t.Errorf("points = %d, want 0", result.NewPoints)
	}
	if result.NewTier != string(constants.TierBase) {
		t.Errorf("tier = %q, want Base", result.NewTier)
	}
}

func TestLoyaltyService_Remove_Demotion(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)

	seedUser(t, db, "u1", 45000)

	result, err := svc.Remove(context.Background(), "u1", 10000)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if result.NewPoints != 35000 {
		t.Errorf("points = %d, want 35000", result.NewPoints)
	}
	if result.NewTier != string(constants.TierAList) {
		t.Errorf("tier = %q, want %q", result.NewTier, constants.TierAList)
	}
}

func TestLoyaltyService_AwardForFlight(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)
	ctx := context.Background()

	seedFlight(t, db, "WN100", 10, time.Now().Add(-1*time.Hour))
	seedUser(t, db, "u1", 0)
	seedUser(t, db, "u2", 19500)
	seedBooking(t, db, "u1", "WN100")
	seedBooking(t, db, "u2", "WN100")

	result, err := svc.AwardForFlight(ctx, "WN100", 500)
	if err != nil {
		t.Fatalf("AwardForFlight failed: %v", err)
	}
	if result.SuccessCount != 2 || result.FailureCount != 0 {
		t.Fatalf("success=%d failure=%d, want 2/0", result.SuccessCount, result.FailureCount)
	}

	var u2 models.User
	db.First(&u2, "id = ?", "u2")
	if u2.Points != 20000 {
		t.Errorf("u2 points = %d, want 20000", u2.Points)
	}
	if u2.Tier != constants.TierAList {
		t.Errorf("u2 tier = %q, want %q", u2.Tier, constants.TierAList)
	}
	if u2.FlightsAttended != 1 {
		t.Errorf("u2 flightsAttended = %d, want 1", u2.FlightsAttended)
	}
}

func TestLoyaltyService_AwardForFlight_PartialFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)
	ctx := context.Background()

	seedFlight(t, db, "WN100", 10, time.Now().Add(-1*time.Hour))
	seedUser(t, db, "u1", 0)
	seedBooking(t, db, "u1", "WN100")

	// A booking whose user row is gone: that row fails, the rest commit.
	orphan := &models.Booking{
		ID:               "WN100-ghost",
		UserID:           "ghost",
		FlightID:         "WN100",
		ConfirmationCode: GenerateConfirmationCode(),
		BookedAt:         time.Now().UTC(),
	}
	if err := db.Create(orphan).Error; err != nil {
		t.Fatalf("seed orphan booking: %v", err)
	}

	result, err := svc.AwardForFlight(ctx, "WN100", 500)
	if err != nil {
		t.Fatalf("AwardForFlight failed: %v", err)
	}
	if result.SuccessCount != 1 || result.FailureCount != 1 {
		t.Fatalf("success=%d failure=%d, want 1/1", result.SuccessCount, result.FailureCount)
	}

	var u1 models.User
	db.First(&u1, "id = ?", "u1")
	if u1.Points != 500 {
		t.Errorf("u1 points = %d, want 500", u1.Points)
	}
}

func TestLoyaltyService_AwardForFlight_NoBookings(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)

	seedFlight(t, db, "WN100", 10, time.Now().Add(1*time.Hour))

	if _, err := svc.AwardForFlight(context.Background(), "WN100", 500); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoyaltyService_RefreshAllTiers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)

	seedUser(t, db, "u1", 50000)
	// Simulate drift from a manual edit.
	db.Model(&models.User{}).Where("id = ?", "u1").UpdateColumn("tier", constants.TierBase)

	result, err := svc.RefreshAllTiers(context.Background())
	if err != nil {
		t.Fatalf("RefreshAllTiers failed: %v", err)
	}
	if result.SuccessCount != 1 {
		t.Errorf("success = %d, want 1", result.SuccessCount)
	}

	var user models.User
	db.First(&user, "id = ?", "u1")
	if user.Tier != constants.TierAListPref {
		t.Errorf("tier = %q, want %q", user.Tier, constants.TierAListPref)
	}
}

func TestLoyaltyService_PurchaseEarlyBird(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", constants.EarlyBirdCost+500)

	if err := svc.PurchaseEarlyBird(ctx, "u1"); err != nil {
		t.Fatalf("PurchaseEarlyBird failed: %v", err)
	}

	var user models.User
	db.First(&user, "id = ?", "u1")
	if !user.HasEarlyBird {
		t.Error("entitlement flag not set")
	}
	if user.Points != 500 {
		t.Errorf("points = %d, want 500", user.Points)
	}
	if user.Tier != constants.TierBase {
		t.Errorf("tier = %q, want Base after the debit", user.Tier)
	}

	// Double purchase is rejected with no further debit.
	if err := svc.PurchaseEarlyBird(ctx, "u1"); !errors.Is(err, constants.ErrAlreadyPurchased) {
		t.Errorf("err = %v, want ErrAlreadyPurchased", err)
	}
	db.First(&user, "id = ?", "u1")
	if user.Points != 500 {
		t.Errorf("points = %d after rejected purchase, want 500", user.Points)
	}
}

func TestLoyaltyService_PurchaseEarlyBird_Insufficient(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoyaltyService(db, nil)

	seedUser(t, db, "u1", constants.EarlyBirdCost-1)

	if err := svc.PurchaseEarlyBird(context.Background(), "u1"); !errors.Is(err, constants.ErrInsufficient) {
		t.Errorf("err = %v, want ErrInsufficient", err)
	}

	var user models.User
	db.First(&user, "id = ?", "u1")
	if user.HasEarlyBird || user.Points != constants.EarlyBirdCost-1 {
		t.Errorf("state mutated by rejected purchase: points=%d earlyBird=%v", user.Points, user.HasEarlyBird)
	}
}
