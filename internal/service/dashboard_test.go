package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/cache"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/infra/resilience"
	"github.com/noahops/console-bfa-go/internal/service"

	"go.uber.org/zap"
)

// fixedPage satisfies the CRUD contract for any type with a single canned
// list response, counting calls.
type fixedPage[T any] struct {
	page  *domain.Page[T]
	calls int
}

func (f *fixedPage[T]) List(_ context.Context, _ map[string]string, _ domain.PageRequest) (*domain.Page[T], error) {
	f.calls++
	return f.page, nil
}

func (f *fixedPage[T]) Get(_ context.Context, id string) (*T, error) {
	return nil, &domain.ErrNotFound{Resource: "entity", ID: id}
}

func (f *fixedPage[T]) Create(_ context.Context, _ any) (*T, error)           { return nil, nil }
func (f *fixedPage[T]) Update(_ context.Context, _ string, _ any) (*T, error) { return nil, nil }
func (f *fixedPage[T]) Delete(_ context.Context, _ string) error              { return nil }

type dashboardPaymentStore struct{ fixedPage[domain.Payment] }

func (d *dashboardPaymentStore) UpdateStatus(_ context.Context, _ string, _ domain.PaymentStatus) (*domain.Payment, error) {
	return nil, nil
}

type dashboardMaterialStore struct{ fixedPage[domain.Material] }

func (d *dashboardMaterialStore) AdjustStock(_ context.Context, _ string, _ domain.StockAdjustment) (*domain.Material, error) {
	return nil, nil
}

func page[T any](results []T) *domain.Page[T] {
	return &domain.Page[T]{Results: results, CurrentPage: 1, PageCount: 1, PageSize: 200, TotalItems: len(results)}
}

func TestSummary_AggregatesAcrossResources(t *testing.T) {
	payments := &dashboardPaymentStore{fixedPage[domain.Payment]{page: page([]domain.Payment{
		{ID: "p1", Amount: 100, Status: domain.PaymentPending},
		{ID: "p2", Amount: 50, Status: domain.PaymentPaid},
	})}}
	teams := &fixedPage[domain.Team]{page: page([]domain.Team{
		{ID: "t1", Status: domain.TeamActive},
		{ID: "t2", Status: domain.TeamInactive},
	})}
	appointments := &fixedPage[domain.Appointment]{page: page([]domain.Appointment{
		{ID: "a1", Status: domain.AppointmentScheduled},
		{ID: "a2", Status: domain.AppointmentCompleted},
		{ID: "a3", Status: domain.AppointmentCompleted},
	})}
	materials := &dashboardMaterialStore{fixedPage[domain.Material]{page: page([]domain.Material{
		{ID: "m1", StockQuantity: 2, MinimumStock: 5},
		{ID: "m2", StockQuantity: 10, MinimumStock: 5},
	})}}
	reviews := &fixedPage[domain.Review]{page: page([]domain.Review{
		{ID: "r1", Rating: 5},
		{ID: "r2", Rating: 4},
		{ID: "r3", Rating: 4},
	})}

	svc := service.NewDashboardService(
		payments, teams, appointments, materials, reviews,
		cache.New[domain.Dashboard](time.Minute),
		resilience.NewBulkhead(5),
		observability.NewMetrics(),
		zap.NewNop(),
	)

	summary, err := svc.Summary(context.Background(), "co-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if summary.Payments.TotalAmount != 150 {
		t.Errorf("expected payment total 150, got %v", summary.Payments.TotalAmount)
	}
	if summary.ActiveTeams != 1 || summary.TotalTeams != 2 {
		t.Errorf("unexpected team counts: %+v", summary)
	}
	if summary.ScheduledAppointments != 1 || summary.CompletedAppointments != 2 {
		t.Errorf("unexpected appointment counts: %+v", summary)
	}
	if summary.LowStockMaterials != 1 {
		t.Errorf("expected 1 low-stock material, got %d", summary.LowStockMaterials)
	}
	if summary.AverageRating != 4.3 {
		t.Errorf("expected rating rounded to 4.3, got %v", summary.AverageRating)
	}
	if summary.CompletionRate != 67 {
		t.Errorf("expected completion rate 67, got %v", summary.CompletionRate)
	}
	if summary.SuccessRate != 50 {
		t.Errorf("expected success rate 50, got %v", summary.SuccessRate)
	}
}

func TestSummary_EmptyCompanyHasZeroRates(t *testing.T) {
	payments := &dashboardPaymentStore{fixedPage[domain.Payment]{page: page[domain.Payment](nil)}}
	teams := &fixedPage[domain.Team]{page: page[domain.Team](nil)}
	appointments := &fixedPage[domain.Appointment]{page: page[domain.Appointment](nil)}
	materials := &dashboardMaterialStore{fixedPage[domain.Material]{page: page[domain.Material](nil)}}
	reviews := &fixedPage[domain.Review]{page: page[domain.Review](nil)}

	svc := service.NewDashboardService(
		payments, teams, appointments, materials, reviews,
		cache.New[domain.Dashboard](time.Minute),
		resilience.NewBulkhead(5),
		observability.NewMetrics(),
		zap.NewNop(),
	)

	summary, err := svc.Summary(context.Background(), "co-empty")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.CompletionRate != 0 || summary.SuccessRate != 0 || summary.AverageRating != 0 {
		t.Errorf("empty company must yield zero rates, got %+v", summary)
	}
}

func TestSummary_SecondCallHitsCache(t *testing.T) {
	payments := &dashboardPaymentStore{fixedPage[domain.Payment]{page: page[domain.Payment](nil)}}
	teams := &fixedPage[domain.Team]{page: page[domain.Team](nil)}
	appointments := &fixedPage[domain.Appointment]{page: page[domain.Appointment](nil)}
	materials := &dashboardMaterialStore{fixedPage[domain.Material]{page: page[domain.Material](nil)}}
	reviews := &fixedPage[domain.Review]{page: page[domain.Review](nil)}

	svc := service.NewDashboardService(
		payments, teams, appointments, materials, reviews,
		cache.New[domain.Dashboard](time.Minute),
		resilience.NewBulkhead(5),
		observability.NewMetrics(),
		zap.NewNop(),
	)

	if _, err := svc.Summary(context.Background(), "co-1"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.Summary(context.Background(), "co-1"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if teams.calls != 1 {
		t.Errorf("expected cached second call, backend saw %d list calls", teams.calls)
	}

	// A different company misses the cache.
	if _, err := svc.Summary(context.Background(), "co-2"); err != nil {
		t.Fatalf("third call: %v", err)
	}
	if teams.calls != 2 {
		t.Errorf("expected per-company cache keys, backend saw %d list calls", teams.calls)
	}
}
