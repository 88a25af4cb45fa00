package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/handler"
	"github.com/noahops/console-bfa-go/internal/infra/cache"
	"github.com/noahops/console-bfa-go/internal/infra/coreapi"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/infra/resilience"
	"github.com/noahops/console-bfa-go/internal/infra/session"
	"github.com/noahops/console-bfa-go/internal/service"
	"github.com/noahops/console-bfa-go/internal/state"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const jwtSecret = "integration-secret"

// newFakeCoreAPI serves the handful of backend routes the flow under test
// touches.
func newFakeCoreAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /Team/paged", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer core-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		page := domain.Page[domain.Team]{
			Results: []domain.Team{
				{ID: "t1", Name: "North Crew", Region: "north", Status: domain.TeamActive},
				{ID: "t2", Name: "South Crew", Region: "south", Status: domain.TeamInactive},
			},
			CurrentPage: 1, PageCount: 1, PageSize: 10, TotalItems: 2,
		}
		json.NewEncoder(w).Encode(page)
	})

	mux.HandleFunc("GET /Payments", func(w http.ResponseWriter, r *http.Request) {
		page := domain.Page[domain.Payment]{
			Results: []domain.Payment{
				{ID: "p1", Reference: "2026-001", Amount: 100, Status: domain.PaymentPending},
				{ID: "p2", Reference: "2026-002", Amount: 50, Status: domain.PaymentPaid},
				{ID: "p3", Reference: "2026-003", Amount: 25, Status: domain.PaymentOverdue},
			},
			CurrentPage: 1, PageCount: 1, PageSize: 200, TotalItems: 3,
		}
		json.NewEncoder(w).Encode(page)
	})

	mux.HandleFunc("PATCH /Payments/p1/status", func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdatePaymentStatusRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(domain.Payment{
			ID: "p1", Reference: "2026-001", Amount: 100, Status: req.Status,
		})
	})

	mux.HandleFunc("GET /Notification", func(w http.ResponseWriter, r *http.Request) {
		page := domain.Page[domain.Notification]{
			Results: []domain.Notification{
				{ID: "n1", Title: "maintenance tonight", Type: domain.NotifyWarning, Broadcast: true},
			},
			CurrentPage: 1, PageCount: 1, PageSize: 10, TotalItems: 1,
		}
		json.NewEncoder(w).Encode(page)
	})

	mux.HandleFunc("POST /Notification/n1/read", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newStack(t *testing.T, backendURL string) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("integration")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	client := coreapi.NewClient(httpClient, backendURL, session.NewStatic("core-token"), cb, cfg, logger)

	payments := coreapi.NewPaymentsStore(client)
	teams := coreapi.NewTeamsStore(client)
	professionals := coreapi.NewProfessionalsStore(client)
	customers := coreapi.NewCustomersStore(client)
	appointments := coreapi.NewAppointmentsStore(client)
	checkRecords := coreapi.NewCheckRecordsStore(client)
	materials := coreapi.NewMaterialsStore(client)
	tracking := coreapi.NewTrackingStore(client)
	notifications := coreapi.NewNotificationsStore(client)
	reviews := coreapi.NewReviewsStore(client)
	companies := coreapi.NewCompaniesStore(client)
	plans := coreapi.NewPlansStore(client)

	paymentStates := state.NewRegistry[domain.Payment](func() *state.Store[domain.Payment] {
		return state.New[domain.Payment](payments, func(p domain.Payment) string { return p.ID }, logger)
	})
	checkRecordStates := state.NewRegistry[domain.CheckRecord](func() *state.Store[domain.CheckRecord] {
		return state.New[domain.CheckRecord](checkRecords, func(c domain.CheckRecord) string { return c.ID }, logger)
	})
	materialStates := state.NewRegistry[domain.Material](func() *state.Store[domain.Material] {
		return state.New[domain.Material](materials, func(m domain.Material) string { return m.ID }, logger)
	})
	teamStates := state.NewRegistry[domain.Team](func() *state.Store[domain.Team] {
		return state.New[domain.Team](teams, func(tm domain.Team) string { return tm.ID }, logger)
	})
	planStates := state.NewRegistry[domain.Plan](func() *state.Store[domain.Plan] {
		return state.New[domain.Plan](plans, func(p domain.Plan) string { return p.ID }, logger)
	})
	professionalStates := state.NewRegistry[domain.Professional](func() *state.Store[domain.Professional] {
		return state.New[domain.Professional](professionals, func(p domain.Professional) string { return p.ID }, logger)
	})
	customerStates := state.NewRegistry[domain.Customer](func() *state.Store[domain.Customer] {
		return state.New[domain.Customer](customers, func(c domain.Customer) string { return c.ID }, logger)
	})
	appointmentStates := state.NewRegistry[domain.Appointment](func() *state.Store[domain.Appointment] {
		return state.New[domain.Appointment](appointments, func(a domain.Appointment) string { return a.ID }, logger)
	})
	trackingStates := state.NewRegistry[domain.TrackingRecord](func() *state.Store[domain.TrackingRecord] {
		return state.New[domain.TrackingRecord](tracking, func(tr domain.TrackingRecord) string { return tr.ID }, logger)
	})
	reviewStates := state.NewRegistry[domain.Review](func() *state.Store[domain.Review] {
		return state.New[domain.Review](reviews, func(r domain.Review) string { return r.ID }, logger)
	})
	companyStates := state.NewRegistry[domain.Company](func() *state.Store[domain.Company] {
		return state.New[domain.Company](companies, func(c domain.Company) string { return c.ID }, logger)
	})

	svcs := handler.Services{
		Payments: service.NewPaymentService(payments, paymentStates, metrics, logger),
		Dashboard: service.NewDashboardService(payments, teams, appointments, materials, reviews,
			cache.New[domain.Dashboard](time.Minute), resilience.NewBulkhead(10), metrics, logger),
		Notifications: service.NewNotificationService(notifications,
			state.New[domain.Notification](notifications, func(n domain.Notification) string { return n.ID }, logger),
			metrics, logger),
		CheckIn:   service.NewCheckInService(checkRecords, checkRecordStates, metrics, logger),
		Materials: service.NewMaterialService(materials, materialStates, metrics, logger),
		Teams: service.NewResourceService[domain.Team, domain.TeamRequest]("team",
			teamStates, metrics, logger),
		Plans: service.NewResourceService[domain.Plan, domain.PlanRequest]("plan",
			planStates, metrics, logger),
		Professionals: service.NewResourceService[domain.Professional, domain.ProfessionalRequest]("professional",
			professionalStates, metrics, logger),
		Customers: service.NewResourceService[domain.Customer, domain.CustomerRequest]("customer",
			customerStates, metrics, logger),
		Appointments: service.NewResourceService[domain.Appointment, domain.AppointmentRequest]("appointment",
			appointmentStates, metrics, logger),
		Tracking: service.NewResourceService[domain.TrackingRecord, struct{}]("tracking",
			trackingStates, metrics, logger),
		Reviews: service.NewResourceService[domain.Review, struct{}]("review",
			reviewStates, metrics, logger),
		Companies: service.NewResourceService[domain.Company, struct{}]("company",
			companyStates, metrics, logger),
	}

	return handler.NewRouter(svcs, metrics, handler.RouterConfig{
		JWTSecret:      jwtSecret,
		AllowedOrigins: []string{"*"},
	}, logger)
}

func token(t *testing.T, sub, role, companyID string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        sub,
		"role":       role,
		"company_id": companyID,
		"exp":        time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// TestIntegration_CompanyTeamsFlow drives a company-portal list through the
// whole stack: router, JWT, service, state store, core API client.
func TestIntegration_CompanyTeamsFlow(t *testing.T) {
	backend := newFakeCoreAPI(t)
	router := newStack(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/v1/company/teams", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "user-1", handler.RoleCompany, "co-1"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results    []domain.Team     `json:"results"`
		Pagination domain.Pagination `json:"pagination"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(resp.Results))
	}
	if resp.Pagination.HasNext() {
		t.Error("single page should disable the next control")
	}
}

// TestIntegration_AdminPaymentsFlow lists payments, reads the aggregate card
// and marks one paid.
func TestIntegration_AdminPaymentsFlow(t *testing.T) {
	backend := newFakeCoreAPI(t)
	router := newStack(t, backend.URL)
	auth := "Bearer " + token(t, "admin-1", handler.RoleAdmin, "")

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/payments/statistics", nil)
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("statistics: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var stats domain.PaymentStatistics
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalAmount != 175 || stats.PendingAmount != 100 || stats.CompletedAmount != 50 || stats.OverdueAmount != 25 {
		t.Errorf("unexpected statistics: %+v", stats)
	}

	body, _ := json.Marshal(domain.UpdatePaymentStatusRequest{Status: domain.PaymentPaid})
	req = httptest.NewRequest(http.MethodPatch, "/v1/admin/payments/p1/status", bytes.NewReader(body))
	req.Header.Set("Authorization", auth)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status patch: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated domain.Payment
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode payment: %v", err)
	}
	if updated.Status != domain.PaymentPaid {
		t.Errorf("expected Paid, got %v", updated.Status)
	}
}

// TestIntegration_NotificationFlow reads the bell menu and marks the
// broadcast read.
func TestIntegration_NotificationFlow(t *testing.T) {
	backend := newFakeCoreAPI(t)
	router := newStack(t, backend.URL)
	auth := "Bearer " + token(t, "user-1", handler.RoleCompany, "co-1")

	req := httptest.NewRequest(http.MethodGet, "/v1/company/notifications", nil)
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var visible []domain.Notification
	if err := json.NewDecoder(rec.Body).Decode(&visible); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != "n1" {
		t.Fatalf("expected the broadcast, got %+v", visible)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/company/notifications/n1/read", nil)
	req.Header.Set("Authorization", auth)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("mark read: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/company/notifications/unread", nil)
	req.Header.Set("Authorization", auth)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var unread map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&unread); err != nil {
		t.Fatalf("decode unread: %v", err)
	}
	if unread["unread"] != 0 {
		t.Errorf("expected 0 unread after mark-read, got %d", unread["unread"])
	}
}
