package api

import (
	"net/http"
	"strconv"
	"time"

	"skyward-va/concourse/internal/auth"
	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/db/repositories"
	"skyward-va/concourse/internal/services"
)

// RewardsHandler handles GET /rewards
func RewardsHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		user, err := userSvc.Get(r.Context(), claims.UserID)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Rewards fetched", map[string]interface{}{
			"userId":          user.ID,
			"points":          user.Points,
			"tier":            user.Tier,
			"flightsAttended": user.FlightsAttended,
			"hasEarlyBird":    user.HasEarlyBird,
		})
	}
}

// LeaderboardHandler handles GET /rewards/leaderboard
func LeaderboardHandler(leaderboardRepo *repositories.LeaderboardRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit := 10
		if qs := r.URL.Query().Get("limit"); qs != "" {
			if n, err := strconv.Atoi(qs); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		entries, err := leaderboardRepo.Top(r.Context(), limit)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Leaderboard fetched", entries)
	}
}
