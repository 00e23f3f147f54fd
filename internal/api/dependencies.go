package api

import (
	"time"

	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/config"
	"skyward-va/concourse/internal/db"
	"skyward-va/concourse/internal/db/repositories"
	"skyward-va/concourse/internal/logging"
	"skyward-va/concourse/internal/metrics"
	"skyward-va/concourse/internal/services"
)

type Repositories struct {
	User        *repositories.UserRepository
	Leaderboard *repositories.LeaderboardRepo
}

type Services struct {
	Cache    common.CacheInterface
	Booking  *services.BookingService
	CheckIn  *services.CheckInService
	Loyalty  *services.LoyaltyService
	Flights  *services.FlightService
	Status   *services.StatusService
	User     *services.UserService
	Linking  *common.LinkingService
	PassSign *common.PassSignerService
}

type Dependencies struct {
	Config   *config.Config
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires repositories and services onto the shared database
// handles. The cache backend and the pass signer are optional collaborators
// selected by configuration.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		User:        repositories.NewUserRepository(db.DB),
		Leaderboard: repositories.NewLeaderboardRepo(db.DB),
	}

	var cache common.CacheInterface
	var signer *common.PassSignerService

	if cfg.CacheBackend == "redis" {
		client := common.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		cache = common.NewRedisCacheService(client)
		if cfg.PassSigningSecret != "" {
			signer = common.NewPassSignerService([]byte(cfg.PassSigningSecret), client)
		}
	} else {
		cache = common.NewCacheService(5*time.Minute, 10*time.Minute)
		if cfg.PassSigningSecret != "" && cfg.RedisAddr != "" {
			client := common.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
			signer = common.NewPassSignerService([]byte(cfg.PassSigningSecret), client)
		}
	}

	if signer == nil {
		logging.Warn("pass signer disabled; boarding passes will not carry render URLs")
	}

	flightSvc := services.NewFlightService(db.PgDB, cache, metricsReg)

	svcs := &Services{
		Cache:    cache,
		Booking:  services.NewBookingService(db.PgDB, metricsReg),
		CheckIn:  services.NewCheckInService(db.PgDB, signer, metricsReg),
		Loyalty:  services.NewLoyaltyService(db.PgDB, metricsReg),
		Flights:  flightSvc,
		Status:   services.NewStatusService(flightSvc, cache),
		User:     services.NewUserService(db.PgDB),
		Linking:  common.NewLinkingService(cache, db.PgDB),
		PassSign: signer,
	}

	return &Dependencies{
		Config:   cfg,
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
