package middleware

import (
	"net/http"

	"skyward-va/concourse/internal/auth"
)

// IsBotMiddleware restricts a route to the Discord bot's shared key.
func IsBotMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims != nil && claims.IsBot {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "Unauthorized. Bot only", http.StatusUnauthorized)
		})
	}
}
