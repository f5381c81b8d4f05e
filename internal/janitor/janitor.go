package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/Abaaza/wallmastersbackend/internal/metrics"
	"github.com/Abaaza/wallmastersbackend/internal/repository"
	"github.com/robfig/cron/v3"
)

const purgeTimeout = 30 * time.Second

// Janitor periodically clears expired password reset tokens from the store.
// Expiry is already enforced at consume time; the purge keeps stale
// credentials from lingering in user records.
type Janitor struct {
	users  repository.UserRepository
	logger *slog.Logger
	cron   *cron.Cron
}

func New(users repository.UserRepository, logger *slog.Logger) *Janitor {
	return &Janitor{
		users:  users,
		logger: logger.With("component", "janitor"),
		cron:   cron.New(),
	}
}

// Start schedules the hourly purge. It returns immediately; the cron runner
// owns its own goroutine.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc("@hourly", j.RunOnce); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("janitor started", "schedule", "@hourly")
	return nil
}

// Stop halts the schedule and waits for a running purge to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("janitor stopped")
}

// RunOnce performs a single purge cycle. The cron schedule calls it hourly.
func (j *Janitor) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	start := time.Now()
	purged, err := j.users.PurgeExpiredResetTokens(ctx, start)
	metrics.JanitorCycleDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		j.logger.Error("purge expired reset tokens", "error", err)
		return
	}

	metrics.ResetTokensPurgedTotal.Add(float64(purged))
	if purged > 0 {
		j.logger.Info("purged expired reset tokens", "count", purged)
	}
}
