package coreapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/coreapi"
	"github.com/noahops/console-bfa-go/internal/infra/resilience"
	"github.com/noahops/console-bfa-go/internal/infra/session"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*coreapi.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := coreapi.NewClient(
		&http.Client{Timeout: 5 * time.Second},
		server.URL,
		session.NewStatic("test-token"),
		resilience.NewCircuitBreaker("test"),
		resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond},
		zap.NewNop(),
	)
	return client, server
}

func TestPaymentsList_SendsAuthAndPagination(t *testing.T) {
	var gotAuth, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery

		page := domain.Page[domain.Payment]{
			Results: []domain.Payment{
				{ID: "pay-1", Reference: "2026-001", Amount: 100, Status: domain.PaymentPending},
			},
			CurrentPage: 2,
			PageCount:   5,
			PageSize:    20,
			TotalItems:  95,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	})

	store := coreapi.NewPaymentsStore(client)
	page, err := store.List(context.Background(),
		map[string]string{"companyId": "co-9"},
		domain.PageRequest{Page: 2, PageSize: 20},
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	for _, want := range []string{"page=2", "pageSize=20", "companyId=co-9"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
	if len(page.Results) != 1 || page.Results[0].ID != "pay-1" {
		t.Errorf("unexpected results: %+v", page.Results)
	}
	if page.TotalItems != 95 {
		t.Errorf("expected 95 total items, got %d", page.TotalItems)
	}
}

func TestGet_NotFoundBecomesDomainError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	store := coreapi.NewPaymentsStore(client)
	_, err := store.Get(context.Background(), "missing")

	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if notFound.ID != "missing" {
		t.Errorf("expected id 'missing', got %q", notFound.ID)
	}
}

func TestCreate_Non2xxCarriesBodyText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("reference already exists"))
	})

	store := coreapi.NewPaymentsStore(client)
	_, err := store.Create(context.Background(), map[string]any{"reference": "dup"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "reference already exists") {
		t.Errorf("expected backend message in error, got %q", err.Error())
	}
}

func TestList_EmptyResultsNeverNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":null,"currentPage":1,"pageCount":0,"pageSize":10,"totalItems":0}`))
	})

	store := coreapi.NewTeamsStore(client)
	page, err := store.List(context.Background(), nil, domain.PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.Results == nil {
		t.Fatal("expected non-nil results slice")
	}
	if len(page.Results) != 0 {
		t.Errorf("expected empty results, got %d", len(page.Results))
	}
}

func TestList_RejectingBreakerBecomesCircuitOpen(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	store := coreapi.NewPaymentsStore(client)

	// Enough consecutive failures to open the breaker.
	for i := 0; i < 5; i++ {
		if _, err := store.List(context.Background(), nil, domain.PageRequest{Page: 1, PageSize: 10}); err == nil {
			t.Fatal("expected error from failing backend")
		}
	}

	_, err := store.List(context.Background(), nil, domain.PageRequest{Page: 1, PageSize: 10})

	var circuitOpen *domain.ErrCircuitOpen
	if !errors.As(err, &circuitOpen) {
		t.Fatalf("expected ErrCircuitOpen once the breaker rejects, got %v", err)
	}
}

func TestMarkRead_PostsToReadRoute(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	store := coreapi.NewNotificationsStore(client)
	if err := store.MarkRead(context.Background(), "notif-3"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/Notification/notif-3/read" {
		t.Errorf("unexpected request: %s %s", gotMethod, gotPath)
	}
}
