package workers

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"skyward-va/concourse/internal/common"
	"skyward-va/concourse/internal/logging"
	"skyward-va/concourse/internal/services"
)

const (
	warmInterval    = 10 * time.Minute
	warmConcurrency = 4
)

// InitWorkers starts the background workers.
func InitWorkers(ctx context.Context, flightSvc *services.FlightService, statusSvc *services.StatusService, cache common.CacheInterface) {
	go runFlightCacheWorker(ctx, flightSvc, statusSvc, cache)
}

// runFlightCacheWorker keeps the per-flight status cache warm so the status
// endpoint rarely has to touch the database. Warms run fan-out with a bounded
// worker count.
func runFlightCacheWorker(ctx context.Context, flightSvc *services.FlightService, statusSvc *services.StatusService, cache common.CacheInterface) {
	warm(ctx, flightSvc, statusSvc, cache)

	ticker := time.NewTicker(warmInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			warm(ctx, flightSvc, statusSvc, cache)
		}
	}
}

func warm(ctx context.Context, flightSvc *services.FlightService, statusSvc *services.StatusService, cache common.CacheInterface) {
	flights, err := flightSvc.List(ctx)
	if err != nil {
		logging.Warn("flight cache warm skipped", "error", err.Error())
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)

	for _, flight := range flights {
		flightID := flight.ID
		g.Go(func() error {
			status, err := statusSvc.Get(gctx, flightID)
			if err != nil {
				// A flight deleted mid-warm is not worth failing the batch.
				return nil
			}
			cache.Set(services.CacheKey(flightID), status, warmInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.Warn("flight cache warm incomplete", "error", err.Error())
		return
	}

	logging.Debug("flight status cache warmed", "flights", len(flights))
}
