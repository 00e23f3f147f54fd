package dtos

type CreateBookingReq struct {
	FlightID string `json:"flightId"`
}

type CancelBookingReq struct {
	BookingID string `json:"bookingId"`
}

type CheckInReq struct {
	ConfirmationCode string `json:"confirmationNumber"`
}

type AwardPointsReq struct {
	UserID string `json:"userId"`
	Points int    `json:"points"`
}

type RemovePointsReq struct {
	UserID string `json:"userId"`
	Points int    `json:"points"`
}

type FlightPointsReq struct {
	FlightID string `json:"flightId"`
	Points   int    `json:"points"`
}

type UpsertFlightReq struct {
	ID           string `json:"id"`
	Origin       string `json:"from"`
	Destination  string `json:"to"`
	Aircraft     string `json:"aircraft"`
	Departure    string `json:"departure"`
	Seats        int    `json:"seats"`
	Registration string `json:"acftReg"`
}

type VerifyLinkReq struct {
	LinkingCode string `json:"linkingCode"`
	// DiscordID names the account to link when the bot redeems the code on
	// a user's behalf. Ignored for direct user calls.
	DiscordID string `json:"discordId,omitempty"`
}

type UpdateUserRolesReq struct {
	IsStaff bool `json:"isStaff"`
	IsAdmin bool `json:"isAdmin"`
}
