package services

import (
	"fmt"
	"testing"

	models "skyward-va/concourse/internal/models/gorm"
)

func bookingAt(position string) models.Booking {
	group := position[:1]
	return models.Booking{BoardingGroup: &group, BoardingPosition: &position}
}

func TestAssignBoardingPosition_EmptyFlight(t *testing.T) {
	group, position := AssignBoardingPosition(nil)
	if group != "A" || position != "A1" {
		t.Errorf("first passenger got %s/%s, want A/A1", group, position)
	}
}

func TestAssignBoardingPosition_FillsGaps(t *testing.T) {
	bookings := []models.Booking{
		bookingAt("A1"),
		bookingAt("A2"),
		bookingAt("A4"),
	}
	group, position := AssignBoardingPosition(bookings)
	if group != "A" || position != "A3" {
		t.Errorf("got %s/%s, want A/A3", group, position)
	}
}

func TestAssignBoardingPosition_RollsToNextGroup(t *testing.T) {
	var bookings []models.Booking
	for pos := 1; pos <= 60; pos++ {
		bookings = append(bookings, bookingAt(fmt.Sprintf("A%d", pos)))
	}
	group, position := AssignBoardingPosition(bookings)
	if group != "B" || position != "B1" {
		t.Errorf("got %s/%s, want B/B1", group, position)
	}
}

func TestAssignBoardingPosition_Overflow(t *testing.T) {
	var bookings []models.Booking
	for _, g := range []string{"A", "B", "C"} {
		for pos := 1; pos <= 60; pos++ {
			bookings = append(bookings, bookingAt(fmt.Sprintf("%s%d", g, pos)))
		}
	}

	// The grid is saturated: every further passenger shares C60.
	group, position := AssignBoardingPosition(bookings)
	if group != "C" || position != "C60" {
		t.Errorf("first overflow got %s/%s, want C/C60", group, position)
	}

	bookings = append(bookings, bookingAt("C60"))
	group, position = AssignBoardingPosition(bookings)
	if group != "C" || position != "C60" {
		t.Errorf("second overflow got %s/%s, want C/C60", group, position)
	}
}
