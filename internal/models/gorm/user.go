package gorm

import (
	"time"

	"skyward-va/concourse/internal/constants"
)

// User is a Discord-linked passenger. Tier is derived state: every code path
// that mutates Points must recompute Tier inside the same transaction.
// HasEarlyBird defaults to false at the schema level; an absent entitlement
// is "not entitled", never null-inferred.
type User struct {
	ID              string         `gorm:"column:id;primaryKey" json:"id"`
	Username        string         `gorm:"column:username;not null" json:"username"`
	Discriminator   string         `gorm:"column:discriminator;not null;default:0" json:"discriminator"`
	Avatar          *string        `gorm:"column:avatar" json:"avatar"`
	Points          int            `gorm:"column:points;not null;default:0" json:"points"`
	Tier            constants.Tier `gorm:"column:tier;not null;default:Base" json:"tier"`
	FlightsAttended int            `gorm:"column:flights_attended;not null;default:0" json:"flightsAttended"`
	HasEarlyBird    bool           `gorm:"column:has_early_bird;not null;default:false" json:"hasEarlyBird"`
	Linked          bool           `gorm:"column:linked;not null;default:false" json:"linked"`
	APIToken        *string        `gorm:"column:api_token" json:"-"`
	IsAdmin         bool           `gorm:"column:is_admin;not null;default:false" json:"isAdmin"`
	IsStaff         bool           `gorm:"column:is_staff;not null;default:false" json:"isStaff"`
	IsBot           bool           `gorm:"column:is_bot;not null;default:false" json:"isBot"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// PassengerLabel renders the name printed on a boarding pass.
func (u *User) PassengerLabel() string {
	return u.Username + "#" + u.Discriminator
}
