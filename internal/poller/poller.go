// Package poller keeps the near-real-time stores warm. Fleet positions and
// notifications are pull-only against the core API, so a cron-driven refresh
// stands in for push updates.
package poller

import (
	"context"
	"time"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/cache"
	"github.com/noahops/console-bfa-go/internal/service"
	"github.com/noahops/console-bfa-go/internal/state"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// refreshTimeout bounds one poll cycle so a hung core API cannot stack
// overlapping refreshes.
const refreshTimeout = 30 * time.Second

// Poller periodically refreshes the tracking and notification stores and
// flushes the dashboard cache so the next read recomputes.
type Poller struct {
	tracking      *state.Store[domain.TrackingRecord]
	notifications *service.NotificationService
	dashboards    *cache.InMemory[domain.Dashboard]
	logger        *zap.Logger

	cron *cron.Cron
}

// New creates a poller over the given stores.
func New(
	tracking *state.Store[domain.TrackingRecord],
	notifications *service.NotificationService,
	dashboards *cache.InMemory[domain.Dashboard],
	logger *zap.Logger,
) *Poller {
	return &Poller{
		tracking:      tracking,
		notifications: notifications,
		dashboards:    dashboards,
		logger:        logger,
		cron:          cron.New(),
	}
}

// Start schedules the refresh on the given cron spec and begins running.
// Errors from a single cycle are logged, not fatal; the next tick retries.
func (p *Poller) Start(spec string) error {
	if _, err := p.cron.AddFunc(spec, p.refresh); err != nil {
		return err
	}
	p.cron.Start()
	p.logger.Info("poller started", zap.String("spec", spec))
	return nil
}

// Stop halts the schedule and waits for a running cycle to finish.
func (p *Poller) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	p.logger.Info("poller stopped")
}

func (p *Poller) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := p.tracking.Refresh(ctx); err != nil {
		p.logger.Warn("poller: tracking refresh failed", zap.Error(err))
	}
	if err := p.notifications.Refresh(ctx); err != nil {
		p.logger.Warn("poller: notification refresh failed", zap.Error(err))
	}
	p.dashboards.Flush()
}
