package middleware

import (
	"net/http"

	"skyward-va/concourse/internal/auth"
)

func IsStaffMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims != nil && (claims.IsStaff || claims.IsAdmin) {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "Unauthorized. Need staff perms", http.StatusUnauthorized)
		})
	}
}
