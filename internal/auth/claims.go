package auth

// UserClaims carries the authenticated caller's identity and role flags
// through the request context.
type UserClaims struct {
	UserID        string
	Username      string
	Discriminator string
	IsStaff       bool
	IsAdmin       bool
	IsBot         bool
}
