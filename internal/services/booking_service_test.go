package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skyward-va/concourse/internal/constants"
	models "skyward-va/concourse/internal/models/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Flight{}, &models.Booking{}, &models.User{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string, points int) *models.User {
	user := &models.User{
		ID:       id,
		Username: "user-" + id,
		Points:   points,
		Tier:     TierFor(points),
		Linked:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", id, err)
	}
	return user
}

func seedFlight(t *testing.T, db *gorm.DB, id string, seats int, departure time.Time) *models.Flight {
	flight := &models.Flight{
		ID:           id,
		Origin:       "KAUS",
		Destination:  "KDAL",
		Aircraft:     "B738",
		Departure:    departure,
		Seats:        seats,
		Registration: "N8710M",
	}
	if err := db.Create(flight).Error; err != nil {
		t.Fatalf("Failed to seed flight %s: %v", id, err)
	}
	return flight
}

func seedBooking(t *testing.T, db *gorm.DB, userID, flightID string) *models.Booking {
	booking := &models.Booking{
		ID:               fmt.Sprintf("%s-%s", flightID, userID),
		UserID:           userID,
		FlightID:         flightID,
		ConfirmationCode: GenerateConfirmationCode(),
		BookedAt:         time.Now().UTC(),
	}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("Failed to seed booking for %s on %s: %v", userID, flightID, err)
	}
	if err := db.Model(&models.Flight{}).Where("id = ?", flightID).
		UpdateColumn("booked", gorm.Expr("booked + 1")).Error; err != nil {
		t.Fatalf("Failed to bump booked counter: %v", err)
	}
	return booking
}

func TestBookingService_CreateBooking(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	seedFlight(t, db, "WN100", 10, time.Now().Add(48*time.Hour))

	booking, err := svc.CreateBooking(ctx, "u1", "WN100")
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if len(booking.ConfirmationCode) != 6 {
		t.Errorf("confirmation code %q, want 6 characters", booking.ConfirmationCode)
	}

	var flight models.Flight
	if err := db.First(&flight, "id = ?", "WN100").Error; err != nil {
		t.Fatalf("flight reload failed: %v", err)
	}
	if flight.Booked != 1 {
		t.Errorf("booked = %d, want 1", flight.Booked)
	}

	// Booking bonus lands in the same transaction.
	var user models.User
	if err := db.First(&user, "id = ?", "u1").Error; err != nil {
		t.Fatalf("user reload failed: %v", err)
	}
	if user.Points != constants.BookingBonusPoints {
		t.Errorf("points = %d, want %d", user.Points, constants.BookingBonusPoints)
	}
}

func TestBookingService_CreateBooking_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	seedFlight(t, db, "WN100", 10, time.Now().Add(48*time.Hour))

	if _, err := svc.CreateBooking(ctx, "u1", "WN100"); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.CreateBooking(ctx, "u1", "WN100"); !errors.Is(err, constants.ErrDuplicateBooking) {
		t.Errorf("second booking err = %v, want ErrDuplicateBooking", err)
	}

	var flight models.Flight
	db.First(&flight, "id = ?", "WN100")
	if flight.Booked != 1 {
		t.Errorf("booked = %d after duplicate attempt, want 1", flight.Booked)
	}
}

func TestBookingService_CreateBooking_FlightNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db, nil)

	seedUser(t, db, "u1", 0)

	if _, err := svc.CreateBooking(context.Background(), "u1", "WN404"); !errors.Is(err, constants.ErrFlightNotFound) {
		t.Errorf("err = %v, want ErrFlightNotFound", err)
	}
}

func TestBookingService_CreateBooking_LastSeat(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	seedUser(t, db, "u2", 0)
	seedFlight(t, db, "WN100", 1, time.Now().Add(48*time.Hour))

	if _, err := svc.CreateBooking(ctx, "u1", "WN100"); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.CreateBooking(ctx, "u2", "WN100"); !errors.Is(err, constants.ErrNoSeatsAvailable) {
		t.Errorf("err = %v, want ErrNoSeatsAvailable", err)
	}

	// The failed attempt must not leak a seat or a bonus.
	var flight models.Flight
	db.First(&flight, "id = ?", "WN100")
	if flight.Booked != 1 {
		t.Errorf("booked = %d, want 1", flight.Booked)
	}
	var user models.User
	db.First(&user, "id = ?", "u2")
	if user.Points != 0 {
		t.Errorf("loser's points = %d, want 0", user.Points)
	}
}

func TestBookingService_CancelBooking_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	seedFlight(t, db, "WN100", 5, time.Now().Add(48*time.Hour))

	booking, err := svc.CreateBooking(ctx, "u1", "WN100")
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if err := svc.CancelBooking(ctx, booking.ID, "u1"); err != nil {
		t.Fatalf("CancelBooking failed: %v", err)
	}

	var flight models.Flight
	db.First(&flight, "id = ?", "WN100")
	if flight.Booked != 0 {
		t.Errorf("booked = %d after round trip, want 0", flight.Booked)
	}

	var count int64
	db.Model(&models.Booking{}).Where("id = ?", booking.ID).Count(&count)
	if count != 0 {
		t.Errorf("booking survived cancellation")
	}
}

func TestBookingService_CancelBooking_NotOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	seedUser(t, db, "u2", 0)
	seedFlight(t, db, "WN100", 5, time.Now().Add(48*time.Hour))

	booking, err := svc.CreateBooking(ctx, "u1", "WN100")
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if err := svc.CancelBooking(ctx, booking.ID, "u2"); !errors.Is(err, constants.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestBookingService_CancelBooking_AfterDeparture(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	seedFlight(t, db, "WN100", 5, time.Now().Add(-1*time.Hour))
	booking := seedBooking(t, db, "u1", "WN100")

	if err := svc.CancelBooking(ctx, booking.ID, "u1"); !errors.Is(err, constants.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	// State untouched: booking and counter both survive.
	var count int64
	db.Model(&models.Booking{}).Where("id = ?", booking.ID).Count(&count)
	if count != 1 {
		t.Errorf("booking deleted despite conflict")
	}
	var flight models.Flight
	db.First(&flight, "id = ?", "WN100")
	if flight.Booked != 1 {
		t.Errorf("booked = %d, want 1", flight.Booked)
	}
}

func TestBookingService_CancelBooking_OrphanFlight(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	booking := &models.Booking{
		ID:               "GONE-u1",
		UserID:           "u1",
		FlightID:         "GONE",
		ConfirmationCode: GenerateConfirmationCode(),
		BookedAt:         time.Now().UTC(),
	}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("seed orphan booking: %v", err)
	}

	if err := svc.CancelBooking(ctx, booking.ID, "u1"); err != nil {
		t.Fatalf("orphan cancel failed: %v", err)
	}

	var count int64
	db.Model(&models.Booking{}).Where("id = ?", booking.ID).Count(&count)
	if count != 0 {
		t.Errorf("orphan booking survived")
	}
}

func TestBookingService_ListForUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	seedFlight(t, db, "WN100", 5, time.Now().Add(48*time.Hour))
	seedFlight(t, db, "WN200", 5, time.Now().Add(-3*time.Hour))
	seedBooking(t, db, "u1", "WN100")
	seedBooking(t, db, "u1", "WN200")

	list, err := svc.ListForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d bookings, want 2", len(list))
	}

	byFlight := map[string]string{}
	for _, entry := range list {
		byFlight[entry.Booking.FlightID] = string(entry.Status)
	}
	if byFlight["WN100"] != "Upcoming" {
		t.Errorf("WN100 status = %q, want Upcoming", byFlight["WN100"])
	}
	if byFlight["WN200"] != "Flight has departed" {
		t.Errorf("WN200 status = %q, want departed label", byFlight["WN200"])
	}
}

func TestBookingService_GetByConfirmation_ScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	seedUser(t, db, "u2", 0)
	seedFlight(t, db, "WN100", 5, time.Now().Add(48*time.Hour))
	booking := seedBooking(t, db, "u1", "WN100")

	got, err := svc.GetByConfirmation(ctx, booking.ConfirmationCode, "u1")
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if got.Booking.ID != booking.ID {
		t.Errorf("got booking %s, want %s", got.Booking.ID, booking.ID)
	}

	if _, err := svc.GetByConfirmation(ctx, booking.ConfirmationCode, "u2"); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("foreign lookup err = %v, want ErrNotFound", err)
	}
}
