package service

import (
	"context"
	"math"
	"time"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/infra/resilience"
	"github.com/noahops/console-bfa-go/internal/port"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// dashboardPageSize bounds each fan-out list call. Companies past this many
// records per resource get a truncated summary rather than a slow one.
const dashboardPageSize = 200

// DashboardService assembles the company home-page summary by fanning out
// over the core API lists concurrently, behind a bulkhead and a short TTL
// cache.
type DashboardService struct {
	payments     port.PaymentStore
	teams        port.TeamStore
	appointments port.AppointmentStore
	materials    port.MaterialStore
	reviews      port.ReviewStore

	cache    port.Cache[domain.Dashboard]
	bulkhead *resilience.Bulkhead
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(
	payments port.PaymentStore,
	teams port.TeamStore,
	appointments port.AppointmentStore,
	materials port.MaterialStore,
	reviews port.ReviewStore,
	cache port.Cache[domain.Dashboard],
	bulkhead *resilience.Bulkhead,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		payments:     payments,
		teams:        teams,
		appointments: appointments,
		materials:    materials,
		reviews:      reviews,
		cache:        cache,
		bulkhead:     bulkhead,
		metrics:      metrics,
		logger:       logger,
	}
}

// Summary returns the dashboard for one company, cached for the configured
// TTL. One failed fan-out leg fails the whole summary; the portal shows the
// last cached copy until the next successful refresh.
func (s *DashboardService) Summary(ctx context.Context, companyID string) (*domain.Dashboard, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.Summary")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("dashboard.summary", time.Since(start)) }()

	cacheKey := "dashboard:" + companyID
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.metrics.IncrCacheHit("dashboard")
		return &cached, nil
	}
	s.metrics.IncrCacheMiss("dashboard")

	if err := s.bulkhead.Acquire(ctx); err != nil {
		return nil, &domain.ErrTimeout{Operation: "dashboard.summary"}
	}
	defer s.bulkhead.Release()

	filters := map[string]string{"companyId": companyID}
	page := domain.PageRequest{Page: 1, PageSize: dashboardPageSize}

	var (
		payments     []domain.Payment
		teams        []domain.Team
		appointments []domain.Appointment
		materials    []domain.Material
		reviews      []domain.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.payments.List(gctx, filters, page)
		if err != nil {
			s.metrics.IncrCoreAPIError("payment")
			return err
		}
		payments = resp.Results
		return nil
	})
	g.Go(func() error {
		resp, err := s.teams.List(gctx, filters, page)
		if err != nil {
			s.metrics.IncrCoreAPIError("team")
			return err
		}
		teams = resp.Results
		return nil
	})
	g.Go(func() error {
		resp, err := s.appointments.List(gctx, filters, page)
		if err != nil {
			s.metrics.IncrCoreAPIError("appointment")
			return err
		}
		appointments = resp.Results
		return nil
	})
	g.Go(func() error {
		resp, err := s.materials.List(gctx, filters, page)
		if err != nil {
			s.metrics.IncrCoreAPIError("material")
			return err
		}
		materials = resp.Results
		return nil
	})
	g.Go(func() error {
		resp, err := s.reviews.List(gctx, filters, page)
		if err != nil {
			s.metrics.IncrCoreAPIError("review")
			return err
		}
		reviews = resp.Results
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard fan-out failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	dashboard := buildDashboard(payments, teams, appointments, materials, reviews)
	s.cache.Set(cacheKey, dashboard)
	return &dashboard, nil
}

func buildDashboard(
	payments []domain.Payment,
	teams []domain.Team,
	appointments []domain.Appointment,
	materials []domain.Material,
	reviews []domain.Review,
) domain.Dashboard {
	d := domain.Dashboard{
		Payments:          ComputePaymentStatistics(payments),
		TotalTeams:        len(teams),
		TotalAppointments: len(appointments),
	}

	for _, t := range teams {
		if t.Status == domain.TeamActive {
			d.ActiveTeams++
		}
	}
	for _, a := range appointments {
		switch a.Status {
		case domain.AppointmentScheduled:
			d.ScheduledAppointments++
		case domain.AppointmentCompleted:
			d.CompletedAppointments++
		}
	}
	// Rates are 0 on an empty set, never NaN.
	d.CompletionRate = percentage(d.CompletedAppointments, d.TotalAppointments)
	d.SuccessRate = percentage(d.Payments.CompletedCount, d.Payments.TotalCount)
	for _, m := range materials {
		if m.BelowMinimum() {
			d.LowStockMaterials++
		}
	}

	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		d.AverageRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}
	return d
}

// percentage returns part/whole as a rounded percent, 0 when whole is 0.
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part) / float64(whole) * 100)
}
