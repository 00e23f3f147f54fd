package middleware

import (
	"net/http"
	"strings"

	"skyward-va/concourse/internal/auth"
	"skyward-va/concourse/internal/db/repositories"
)

// AuthMiddleware resolves the caller from a Bearer API token. The bot key is
// a configured shared secret; everything else is a per-user token minted at
// Discord link time.
func AuthMiddleware(userRepo *repositories.UserRepository, botAPIKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized. API token required", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			var claims *auth.UserClaims

			if botAPIKey != "" && token == botAPIKey {
				claims = &auth.UserClaims{UserID: "bot", IsBot: true, IsStaff: true}
			} else {
				user, err := userRepo.FindUserByToken(r.Context(), token)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				claims = &auth.UserClaims{
					UserID:        user.ID,
					Username:      user.Username,
					Discriminator: user.Discriminator,
					IsStaff:       user.IsStaff,
					IsAdmin:       user.IsAdmin,
					IsBot:         user.IsBot,
				}
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
