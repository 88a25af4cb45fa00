package service_test

import (
	"context"
	"testing"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/service"
	"github.com/noahops/console-bfa-go/internal/state"

	"go.uber.org/zap"
)

type fakePaymentStore struct {
	pages        []*domain.Page[domain.Payment]
	listCalls    int
	updated      *domain.Payment
	updateCalled bool
}

func (f *fakePaymentStore) List(_ context.Context, _ map[string]string, _ domain.PageRequest) (*domain.Page[domain.Payment], error) {
	page := f.pages[f.listCalls]
	f.listCalls++
	return page, nil
}

func (f *fakePaymentStore) Get(_ context.Context, id string) (*domain.Payment, error) {
	return nil, &domain.ErrNotFound{Resource: "payment", ID: id}
}

func (f *fakePaymentStore) Create(_ context.Context, _ any) (*domain.Payment, error) {
	return nil, nil
}

func (f *fakePaymentStore) Update(_ context.Context, _ string, _ any) (*domain.Payment, error) {
	return nil, nil
}

func (f *fakePaymentStore) Delete(_ context.Context, _ string) error { return nil }

func (f *fakePaymentStore) UpdateStatus(_ context.Context, _ string, _ domain.PaymentStatus) (*domain.Payment, error) {
	f.updateCalled = true
	return f.updated, nil
}

func paymentID(p domain.Payment) string { return p.ID }

func TestComputePaymentStatistics_PartitionsByStatus(t *testing.T) {
	payments := []domain.Payment{
		{ID: "p1", Amount: 100, Status: domain.PaymentPending},
		{ID: "p2", Amount: 50, Status: domain.PaymentPaid},
		{ID: "p3", Amount: 25, Status: domain.PaymentOverdue},
	}

	stats := service.ComputePaymentStatistics(payments)

	if stats.TotalAmount != 175 {
		t.Errorf("expected total 175, got %v", stats.TotalAmount)
	}
	if stats.PendingAmount != 100 || stats.PendingCount != 1 {
		t.Errorf("unexpected pending: %v/%d", stats.PendingAmount, stats.PendingCount)
	}
	if stats.CompletedAmount != 50 || stats.CompletedCount != 1 {
		t.Errorf("unexpected completed: %v/%d", stats.CompletedAmount, stats.CompletedCount)
	}
	if stats.OverdueAmount != 25 || stats.OverdueCount != 1 {
		t.Errorf("unexpected overdue: %v/%d", stats.OverdueAmount, stats.OverdueCount)
	}
	if stats.TotalCount != 3 {
		t.Errorf("expected 3 records, got %d", stats.TotalCount)
	}
}

func TestComputePaymentStatistics_CancelledCountsOnlyTowardTotals(t *testing.T) {
	payments := []domain.Payment{
		{ID: "p1", Amount: 100, Status: domain.PaymentPaid},
		{ID: "p2", Amount: 40, Status: domain.PaymentCancelled},
	}

	stats := service.ComputePaymentStatistics(payments)

	if stats.TotalAmount != 140 || stats.TotalCount != 2 {
		t.Errorf("cancelled should count toward totals: %+v", stats)
	}
	partitioned := stats.PendingAmount + stats.OverdueAmount + stats.CompletedAmount
	if partitioned != 100 {
		t.Errorf("cancelled leaked into a partition: %+v", stats)
	}
}

func TestComputePaymentStatistics_EmptyList(t *testing.T) {
	stats := service.ComputePaymentStatistics(nil)
	if stats != (domain.PaymentStatistics{}) {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestUpdateStatus_MergesBackendCopy(t *testing.T) {
	backend := &fakePaymentStore{
		pages: []*domain.Page[domain.Payment]{
			{
				Results:     []domain.Payment{{ID: "p1", Amount: 100, Status: domain.PaymentPending}},
				CurrentPage: 1, PageCount: 1, PageSize: 10, TotalItems: 1,
			},
		},
		updated: &domain.Payment{ID: "p1", Amount: 100, Status: domain.PaymentPaid},
	}
	states := state.NewRegistry[domain.Payment](func() *state.Store[domain.Payment] {
		return state.New[domain.Payment](backend, paymentID, zap.NewNop())
	})
	svc := service.NewPaymentService(backend, states, observability.NewMetrics(), zap.NewNop())

	if _, _, err := svc.List(context.Background(), "admin", domain.PageRequest{}, nil); err != nil {
		t.Fatalf("list: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), "admin", "p1", domain.PaymentPaid)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !backend.updateCalled {
		t.Fatal("backend transition was never requested")
	}
	if updated.Status != domain.PaymentPaid {
		t.Errorf("expected Paid, got %v", updated.Status)
	}

	items := states.For("admin").Items()
	if len(items) != 1 || items[0].Status != domain.PaymentPaid {
		t.Errorf("backend copy not merged into the list: %+v", items)
	}
}

func TestStatistics_FoldsEveryPage(t *testing.T) {
	backend := &fakePaymentStore{
		pages: []*domain.Page[domain.Payment]{
			{
				Results:     []domain.Payment{{ID: "p1", Amount: 100, Status: domain.PaymentPending}},
				CurrentPage: 1, PageCount: 2, PageSize: 1, TotalItems: 2,
			},
			{
				Results:     []domain.Payment{{ID: "p2", Amount: 50, Status: domain.PaymentPaid}},
				CurrentPage: 2, PageCount: 2, PageSize: 1, TotalItems: 2,
			},
		},
	}
	states := state.NewRegistry[domain.Payment](func() *state.Store[domain.Payment] {
		return state.New[domain.Payment](backend, paymentID, zap.NewNop())
	})
	svc := service.NewPaymentService(backend, states, observability.NewMetrics(), zap.NewNop())

	stats, err := svc.Statistics(context.Background(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if backend.listCalls != 2 {
		t.Errorf("expected both pages fetched, got %d calls", backend.listCalls)
	}
	if stats.TotalAmount != 150 || stats.TotalCount != 2 {
		t.Errorf("stats should cover every page: %+v", stats)
	}
}
