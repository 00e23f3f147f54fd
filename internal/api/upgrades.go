package api

import (
	"net/http"
	"time"

	"skyward-va/concourse/internal/auth"
	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/constants"
	"skyward-va/concourse/internal/services"
)

// EarlyBirdStatusHandler handles GET /upgrades/earlybird
func EarlyBirdStatusHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		user, err := userSvc.Get(r.Context(), claims.UserID)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Early bird status fetched", map[string]interface{}{
			"hasEarlyBird": user.HasEarlyBird,
			"cost":         constants.EarlyBirdCost,
			"points":       user.Points,
		})
	}
}

// EarlyBirdListHandler handles GET /upgrades/earlybird/list (admin)
func EarlyBirdListHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		users, err := userSvc.EarlyBirdHolders(r.Context())
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Early bird holders fetched", users)
	}
}

// PurchaseEarlyBirdHandler handles POST /upgrades/purchase/earlybird
func PurchaseEarlyBirdHandler(loyaltySvc *services.LoyaltyService, userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if err := loyaltySvc.PurchaseEarlyBird(r.Context(), claims.UserID); err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		user, err := userSvc.Get(r.Context(), claims.UserID)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Early bird purchased", map[string]interface{}{
			"hasEarlyBird": user.HasEarlyBird,
			"points":       user.Points,
			"tier":         user.Tier,
		})
	}
}
