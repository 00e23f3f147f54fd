package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	models "skyward-va/concourse/internal/models/gorm"
	"skyward-va/concourse/internal/services"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Flight{}, &models.Booking{}, &models.User{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestAwardPointsHandler_DoesNotBumpAttended(t *testing.T) {
	db := setupHandlerTestDB(t)
	if err := db.Create(&models.User{ID: "u1", Username: "pilot", Linked: true}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	handler := AwardPointsHandler(services.NewLoyaltyService(db, nil))

	body, _ := json.Marshal(map[string]interface{}{"userId": "u1", "points": 100})
	req := httptest.NewRequest("POST", "/admin/awardpoints", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	// The balance moves; the attended counter only moves with the
	// per-flight bulk award.
	var user models.User
	if err := db.First(&user, "id = ?", "u1").Error; err != nil {
		t.Fatalf("user reload failed: %v", err)
	}
	if user.Points != 100 {
		t.Errorf("points = %d, want 100", user.Points)
	}
	if user.FlightsAttended != 0 {
		t.Errorf("flightsAttended = %d after single award, want 0", user.FlightsAttended)
	}
}
