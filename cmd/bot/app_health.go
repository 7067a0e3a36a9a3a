package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/swig/pkg/dataaccess/connection"
	"github.com/alexliesenfeld/health"
)

func (a *App) statusListener(service string) func(ctx context.Context, name string, state health.CheckState) {
	return func(_ context.Context, name string, state health.CheckState) {
		a.Info(service+" health check status changed",
			slog.String("name", name),
			slog.String("state", string(state.Status)),
		)
	}
}

func (a *App) healthCheck() Controller {
	opts := []health.CheckerOption{
		// Set a TTL of 1 second for the results of the checks.
		health.WithCacheDuration(1 * time.Second),

		// Set a timeout of 2 seconds for the checks.
		health.WithTimeout(2 * time.Second),

		// Monitor the health of the Discord API.
		health.WithPeriodicCheck(15*time.Second, 5*time.Second, health.Check{
			Name: "Discord_API",
			Check: func(ctx context.Context) error {
				if _, err := a.Session().GatewayBot(); err != nil {
					return fmt.Errorf("failed to ping Discord API: %w", err)
				}
				return nil
			},
			Timeout:        3 * time.Second,
			StatusListener: a.statusListener("Discord API"),
		}),
	}

	// The audit database is only checked when the audit ledger is enabled.
	if a.mongo != nil {
		opts = append(opts, health.WithCheck(health.Check{
			Name: "MongoDB",
			Check: func(ctx context.Context) error {
				if err := connection.Ping(ctx, a.mongo); err != nil {
					return fmt.Errorf("failed to ping MongoDB: %w", err)
				}
				return nil
			},
			Timeout:        2 * time.Second,
			StatusListener: a.statusListener("MongoDB"),
		}))
	}

	if a.redis != nil {
		opts = append(opts, health.WithCheck(health.Check{
			Name: "Redis",
			Check: func(ctx context.Context) error {
				if err := connection.PingRedis(ctx, a.redis); err != nil {
					return fmt.Errorf("failed to ping Redis: %w", err)
				}
				return nil
			},
			Timeout:        2 * time.Second,
			StatusListener: a.statusListener("Redis"),
		}))
	}

	return Controller(health.NewHandler(health.NewChecker(opts...)))
}
