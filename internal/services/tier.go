package services

import "skyward-va/concourse/internal/constants"

// TierFor maps a point balance to its loyalty tier. Pure and total over
// non-negative balances; the tier column is always derived through this
// function, never set independently.
func TierFor(points int) constants.Tier {
	switch {
	case points >= constants.PointsCompanionPass:
		return constants.TierCompanionPass
	case points >= constants.PointsAListPref:
		return constants.TierAListPref
	case points >= constants.PointsAList:
		return constants.TierAList
	default:
		return constants.TierBase
	}
}
