package jobs

import (
	"context"

	"github.com/robfig/cron/v3"

	"skyward-va/concourse/internal/logging"
	"skyward-va/concourse/internal/services"
)

// Container holds the cron scheduler so the caller can stop it on shutdown.
type Container struct {
	Cron *cron.Cron
}

// InitializeJobs starts the background schedule. The departed-flight sweep
// runs every five minutes and removes flights more than two hours past
// departure, together with their bookings.
func InitializeJobs(ctx context.Context, flightSvc *services.FlightService) (*Container, error) {
	c := cron.New()

	_, err := c.AddFunc("*/5 * * * *", func() {
		result, err := flightSvc.SweepDeparted(ctx)
		if err != nil {
			logging.Error("departed flight sweep failed", "error", err.Error())
			return
		}
		if result.FlightsDeleted > 0 {
			logging.Info("departed flight sweep completed",
				"flights_deleted", result.FlightsDeleted,
				"bookings_deleted", result.BookingsDeleted,
			)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logging.Info("background jobs scheduled", "sweep_interval", "5m")

	return &Container{Cron: c}, nil
}

// Stop halts the scheduler. Running jobs finish their current invocation.
func (c *Container) Stop() {
	if c.Cron != nil {
		c.Cron.Stop()
	}
}
