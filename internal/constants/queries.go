package constants

const (
	GetUserByApiToken = `
	SELECT * FROM users WHERE api_token = $1
	`

	GetLeaderboard = `
	SELECT id, username, points, tier FROM users ORDER BY points DESC LIMIT $1
	`

	GetAttendedCount = `
	SELECT flights_attended FROM users WHERE id = $1
	`
)
