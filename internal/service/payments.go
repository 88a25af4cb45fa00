// Package service implements the console's use cases on top of the core API
// stores and the per-resource state stores.
package service

import (
	"context"
	"time"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/port"
	"github.com/noahops/console-bfa-go/internal/state"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service")

// PaymentService owns the payments page: listing, status transitions and the
// aggregate statistics card. State is partitioned by the caller's scope so
// the admin view and each company view stay isolated.
type PaymentService struct {
	backend port.PaymentStore
	states  *state.Registry[domain.Payment]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewPaymentService creates the payment service.
func NewPaymentService(backend port.PaymentStore, states *state.Registry[domain.Payment], metrics *observability.Metrics, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		backend: backend,
		states:  states,
		metrics: metrics,
		logger:  logger,
	}
}

// List fetches a page of payments into the scope's state store and returns
// the current view.
func (s *PaymentService) List(ctx context.Context, scope string, req domain.PageRequest, filters map[string]string) ([]domain.Payment, domain.Pagination, error) {
	ctx, span := tracer.Start(ctx, "PaymentService.List")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("payments.list", time.Since(start)) }()

	store := s.states.For(scope)
	if err := store.Fetch(ctx, req, filters); err != nil {
		s.metrics.IncrCoreAPIError("payment")
		return nil, store.Pagination(), err
	}
	return store.Items(), store.Pagination(), nil
}

// Get returns a single payment straight from the backend.
func (s *PaymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "PaymentService.Get")
	defer span.End()

	return s.backend.Get(ctx, id)
}

// UpdateStatus requests a status transition and merges the backend's copy
// into the scope's list. MarkPaid in the portals is this with PaymentPaid.
func (s *PaymentService) UpdateStatus(ctx context.Context, scope, id string, status domain.PaymentStatus) (*domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "PaymentService.UpdateStatus")
	defer span.End()

	updated, err := s.backend.UpdateStatus(ctx, id, status)
	if err != nil {
		s.metrics.IncrCoreAPIError("payment")
		s.logger.Warn("payment status update failed",
			zap.String("payment_id", id),
			zap.String("status", status.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.states.For(scope).Merge(*updated)
	s.logger.Info("payment status updated",
		zap.String("payment_id", id),
		zap.String("status", updated.Status.String()),
	)
	return updated, nil
}

// Statistics folds the aggregate card over every payment matching the given
// filters. It pages through the backend so the numbers cover the whole set,
// not just the page on screen.
func (s *PaymentService) Statistics(ctx context.Context, filters map[string]string) (*domain.PaymentStatistics, error) {
	ctx, span := tracer.Start(ctx, "PaymentService.Statistics")
	defer span.End()

	all, err := s.listAll(ctx, filters)
	if err != nil {
		s.metrics.IncrCoreAPIError("payment")
		return nil, err
	}
	stats := ComputePaymentStatistics(all)
	return &stats, nil
}

func (s *PaymentService) listAll(ctx context.Context, filters map[string]string) ([]domain.Payment, error) {
	const pageSize = 200

	var all []domain.Payment
	for page := 1; ; page++ {
		resp, err := s.backend.List(ctx, filters, domain.PageRequest{Page: page, PageSize: pageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)
		if page >= resp.PageCount || len(resp.Results) == 0 {
			return all, nil
		}
	}
}

// ComputePaymentStatistics folds a payment list into the aggregate card.
// Every record counts toward the totals; Pending, Overdue and Paid partition
// the amounts, and Cancelled records fall into none of the three.
func ComputePaymentStatistics(payments []domain.Payment) domain.PaymentStatistics {
	var stats domain.PaymentStatistics
	for _, p := range payments {
		stats.TotalAmount += p.Amount
		stats.TotalCount++

		switch p.Status {
		case domain.PaymentPending:
			stats.PendingAmount += p.Amount
			stats.PendingCount++
		case domain.PaymentOverdue:
			stats.OverdueAmount += p.Amount
			stats.OverdueCount++
		case domain.PaymentPaid:
			stats.CompletedAmount += p.Amount
			stats.CompletedCount++
		}
	}
	return stats
}
