package routes

import (
	"github.com/go-chi/chi/v5"

	"skyward-va/concourse/internal/api"
	"skyward-va/concourse/internal/metrics"
	"skyward-va/concourse/internal/middleware"
)

// RegisterAPIRoutes registers all routes and handlers.
// This keeps route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, deps *api.Dependencies) {

	svcs := deps.Services
	repos := deps.Repo

	// Public routes with metrics
	r.Group(func(public chi.Router) {
		public.Use(middleware.MetricsMiddleware(metricsReg))
		public.Get("/flights", api.ListFlightsHandler(svcs.Flights))
		public.Get("/flights/{id}", api.GetFlightHandler(svcs.Flights))
		public.Get("/status/{flightId}", api.FlightStatusHandler(svcs.Status))
		public.Get("/pass/render", api.RenderPassHandler(svcs.CheckIn))
	})

	// Authenticated routes
	r.Group(func(authed chi.Router) {
		authed.Use(middleware.MetricsMiddleware(metricsReg))
		authed.Use(middleware.AuthMiddleware(repos.User, deps.Config.BotAPIKey))

		authed.Post("/book", api.CreateBookingHandler(svcs.Booking))
		authed.Get("/bookings", api.ListBookingsHandler(svcs.Booking))
		authed.Get("/bookings/attended", api.AttendedCountHandler(repos.User))
		authed.Get("/bookings/{code}", api.BookingByConfirmationHandler(svcs.Booking))
		authed.Post("/bookings/cancel", api.CancelBookingHandler(svcs.Booking))

		authed.Post("/checkin", api.CheckInHandler(svcs.CheckIn))

		authed.Get("/rewards", api.RewardsHandler(svcs.User))
		authed.Get("/rewards/leaderboard", api.LeaderboardHandler(repos.Leaderboard))

		authed.Get("/upgrades/earlybird", api.EarlyBirdStatusHandler(svcs.User))
		authed.Post("/upgrades/purchase/earlybird", api.PurchaseEarlyBirdHandler(svcs.Loyalty, svcs.User))

		authed.Get("/linkdiscord", api.GenerateLinkCodeHandler(svcs.Linking))
		authed.Post("/linkdiscord/verify", api.VerifyLinkHandler(svcs.Linking))

		// Bot-only group
		authed.Group(func(bot chi.Router) {
			bot.Use(middleware.IsBotMiddleware())
			bot.Get("/linked/{discordId}", api.LinkedHandler(svcs.User))
		})

		// Staff-only group
		authed.Group(func(staff chi.Router) {
			staff.Use(middleware.IsStaffMiddleware())

			staff.Get("/employee", api.EmployeeHandler(svcs.User))

			staff.Post("/flights", api.CreateFlightHandler(svcs.Flights))
			staff.Put("/changeflight/{id}", api.UpdateFlightHandler(svcs.Flights))
			staff.Delete("/changeflight/{id}", api.DeleteFlightHandler(svcs.Flights))

			staff.Post("/admin/awardpoints", api.AwardPointsHandler(svcs.Loyalty))
			staff.Post("/admin/removepoints", api.RemovePointsHandler(svcs.Loyalty))
			staff.Post("/admin/awardflightpoints", api.AwardFlightPointsHandler(svcs.Loyalty))
			staff.Post("/admin/removeflightpoints", api.RemoveFlightPointsHandler(svcs.Loyalty))
			staff.Post("/admin/refresh-tiers", api.RefreshTiersHandler(svcs.Loyalty))

			// Admin-only group
			staff.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Get("/upgrades/earlybird/list", api.EarlyBirdListHandler(svcs.User))
				admin.Patch("/users/{id}", api.UpdateUserRolesHandler(svcs.User))
			})
		})
	})
}
