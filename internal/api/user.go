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

// EmployeeHandler handles GET /employee. Staff see their role flags along
// with the passenger profile.
func EmployeeHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		user, err := userSvc.Get(r.Context(), claims.UserID)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Employee profile fetched", user)
	}
}

// UpdateUserRolesHandler handles PATCH /users/{id} (admin)
func UpdateUserRolesHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		userID := chi.URLParam(r, "id")
		var req dtos.UpdateUserRolesReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "invalid roles payload", http.StatusBadRequest)
			return
		}

		user, err := userSvc.UpdateRoles(r.Context(), userID, req.IsStaff, req.IsAdmin)
		if err != nil {
			code, msg := statusForError(err)
			common.RespondError(w, initTime, err, msg, code)
			return
		}

		common.RespondSuccess(w, initTime, "Roles updated", user)
	}
}
