package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skyward-va/concourse/internal/auth"
	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/models/dtos"
	"skyward-va/concourse/internal/services"
)

// GenerateLinkCodeHandler handles GET /linkdiscord
func GenerateLinkCodeHandler(linkingSvc *common.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		code, err := linkingSvc.GenerateCode(claims.IsStaff)
		if err != nil {
			status, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, status)
			return
		}

		common.RespondSuccess(w, initTime, "Linking code generated", map[string]string{
			"linkingCode": code,
		})
	}
}

// VerifyLinkHandler handles POST /linkdiscord/verify
func VerifyLinkHandler(linkingSvc *common.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.VerifyLinkReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LinkingCode == "" {
			common.RespondError(w, initTime, err, "linkingCode is required", http.StatusBadRequest)
			return
		}

		userID := claims.UserID
		if claims.IsBot {
			if req.DiscordID == "" {
				common.RespondError(w, initTime, nil, "discordId is required for bot verification", http.StatusBadRequest)
				return
			}
			userID = req.DiscordID
		}

		data, token, err := linkingSvc.Verify(r.Context(), req.LinkingCode, userID)
		if err != nil {
			status, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, status)
			return
		}

		common.RespondSuccess(w, initTime, "Account linked", map[string]interface{}{
			"userId":   data.UserID,
			"apiToken": token,
		})
	}
}

// LinkedHandler handles GET /linked/{discordId} (bot)
func LinkedHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		discordID := chi.URLParam(r, "discordId")
		linked, err := userSvc.IsLinked(r.Context(), discordID)
		if err != nil {
			status, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, status)
			return
		}

		common.RespondSuccess(w, initTime, "Link status fetched", map[string]bool{
			"linked": linked,
		})
	}
}
