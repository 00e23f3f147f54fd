package services

import (
	"fmt"

	"skyward-va/concourse/internal/constants"
	models "skyward-va/concourse/internal/models/gorm"
)

// AssignBoardingPosition returns the first free boarding slot for a flight,
// scanning groups A, B, C in order and positions 1..60 ascending within each
// group. When all 180 slots are taken every further passenger shares the
// C60 overflow slot; that collision is the documented policy, not an error.
func AssignBoardingPosition(bookings []models.Booking) (group string, position string) {
	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if b.BoardingPosition != nil {
			taken[*b.BoardingPosition] = true
		}
	}

	for _, g := range constants.BoardingGroups {
		for pos := 1; pos <= constants.BoardingPositions; pos++ {
			token := fmt.Sprintf("%s%d", g, pos)
			if !taken[token] {
				return g, token
			}
		}
	}

	return "C", constants.OverflowPosition
}
