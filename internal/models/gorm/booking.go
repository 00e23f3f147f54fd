package gorm

import "time"

// Booking links a user to a flight. The (UserID, FlightID) pair is unique:
// a user holds at most one booking per flight. BoardingGroup and
// BoardingPosition stay nil until check-in assigns them, exactly once.
// A partial unique index on (flight_id, boarding_position) keeps concurrent
// check-ins from landing on the same seat; C60 is the overflow position and
// is exempt.
type Booking struct {
	ID               string     `gorm:"column:id;primaryKey" json:"id"`
	UserID           string     `gorm:"column:user_id;not null;uniqueIndex:idx_user_flight" json:"userId"`
	FlightID         string     `gorm:"column:flight_id;not null;uniqueIndex:idx_user_flight;uniqueIndex:idx_flight_position,where:boarding_position <> 'C60'" json:"flightId"`
	ConfirmationCode string     `gorm:"column:confirmation_code;uniqueIndex;not null" json:"confirmationNumber"`
	BookedAt         time.Time  `gorm:"column:booked_at;not null" json:"bookedAt"`
	BoardingGroup    *string    `gorm:"column:boarding_group" json:"boardingGroup"`
	BoardingPosition *string    `gorm:"column:boarding_position;uniqueIndex:idx_flight_position,where:boarding_position <> 'C60'" json:"boardingPosition"`
	CheckedInAt      *time.Time `gorm:"column:checked_in_at" json:"checkedInAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

// CheckedIn reports whether a boarding position has been assigned.
func (b *Booking) CheckedIn() bool {
	return b.BoardingPosition != nil
}
