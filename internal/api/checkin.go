package api

import (
	"encoding/json"
	"net/http"
	"time"

	"skyward-va/concourse/internal/auth"
	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/models/dtos"
	"skyward-va/concourse/internal/services"
)

// CheckInHandler handles POST /checkin
func CheckInHandler(checkInSvc *services.CheckInService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.CheckInReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ConfirmationCode == "" {
			common.RespondError(w, initTime, err, "confirmationNumber is required", http.StatusBadRequest)
			return
		}

		pass, err := checkInSvc.CheckIn(r.Context(), req.ConfirmationCode, claims.UserID)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Checked in", pass)
	}
}

// RenderPassHandler handles GET /pass/render. The token in the query string
// is minted at check-in time and is valid for one render only.
func RenderPassHandler(checkInSvc *services.CheckInService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		token := r.URL.Query().Get("token")
		if token == "" {
			common.RespondError(w, initTime, nil, "token is required", http.StatusBadRequest)
			return
		}

		pass, err := checkInSvc.RenderPass(r.Context(), token)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Boarding pass", pass)
	}
}
