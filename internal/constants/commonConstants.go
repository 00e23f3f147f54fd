package constants

import "time"

type (
	APIStatus   string
	CachePrefix string
	Tier        string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixFlightList   CachePrefix = "FLIGHTS_"
	CachePrefixFlightStatus CachePrefix = "FSTATUS_"
	CachePrefixLinkingCode  CachePrefix = "LINK_"
)

// Loyalty tiers, derived from point balance only.
const (
	TierBase          Tier = "Base"
	TierAList         Tier = "A-List"
	TierAListPref     Tier = "A-List Preferred"
	TierCompanionPass Tier = "Companion Pass"
)

// Stringer – convenient for fmt / logs
func (t Tier) String() string { return string(t) }

// Tier thresholds.
const (
	PointsAList         = 20000
	PointsAListPref     = 40000
	PointsCompanionPass = 100000
)

const (
	// BookingBonusPoints is the flat award on every successful booking.
	BookingBonusPoints = 100

	// EarlyBirdCost is the point price of the early check-in entitlement.
	EarlyBirdCost = 15000

	// CheckInWindow / CheckInWindowEarlyBird gate check-in relative to departure.
	CheckInWindow          = 24 * time.Hour
	CheckInWindowEarlyBird = 36 * time.Hour

	// SweepGrace is how long after departure a flight survives before the
	// periodic sweep removes it and its bookings.
	SweepGrace = 2 * time.Hour

	// LinkingCodeTTL bounds how long a Discord linking code is redeemable.
	LinkingCodeTTL = 10 * time.Minute
)

// Boarding grid: groups scanned in order, positions 1..BoardingPositions
// within each group. OverflowPosition is the documented shared fallback when
// the whole grid is taken.
var BoardingGroups = []string{"A", "B", "C"}

const (
	BoardingPositions = 60
	OverflowPosition  = "C60"
)
