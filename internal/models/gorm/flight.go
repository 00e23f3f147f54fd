package gorm

import "time"

// Flight is a scheduled departure with a seat inventory counter.
// Invariant: 0 <= Booked <= Seats, enforced by guarded updates.
type Flight struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Origin       string    `gorm:"column:origin;not null" json:"from"`
	Destination  string    `gorm:"column:destination;not null" json:"to"`
	Aircraft     string    `gorm:"column:aircraft;not null" json:"aircraft"`
	Departure    time.Time `gorm:"column:departure;not null" json:"departure"`
	Seats        int       `gorm:"column:seats;not null" json:"seats"`
	Booked       int       `gorm:"column:booked;not null;default:0" json:"booked"`
	Registration string    `gorm:"column:registration;not null" json:"acftReg"`
}

func (Flight) TableName() string {
	return "flights"
}

// Departed reports whether the flight's departure time has passed.
func (f *Flight) Departed(now time.Time) bool {
	return f.Departure.Before(now)
}
