package entities

import "time"

// User is the sqlx-side projection of the users table, used by the
// token-auth and leaderboard read paths.
type User struct {
	ID              string    `db:"id"`
	Username        string    `db:"username"`
	Discriminator   string    `db:"discriminator"`
	Avatar          *string   `db:"avatar"`
	Points          int       `db:"points"`
	Tier            string    `db:"tier"`
	FlightsAttended int       `db:"flights_attended"`
	HasEarlyBird    bool      `db:"has_early_bird"`
	Linked          bool      `db:"linked"`
	APIToken        *string   `db:"api_token"`
	IsAdmin         bool      `db:"is_admin"`
	IsStaff         bool      `db:"is_staff"`
	IsBot           bool      `db:"is_bot"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// LeaderboardEntry is a single row of the points leaderboard.
type LeaderboardEntry struct {
	ID       string `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Points   int    `db:"points" json:"points"`
	Tier     string `db:"tier" json:"tier"`
}
