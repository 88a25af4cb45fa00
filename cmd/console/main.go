package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noahops/console-bfa-go/internal/config"
	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/handler"
	"github.com/noahops/console-bfa-go/internal/infra/cache"
	"github.com/noahops/console-bfa-go/internal/infra/coreapi"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/infra/resilience"
	"github.com/noahops/console-bfa-go/internal/infra/session"
	"github.com/noahops/console-bfa-go/internal/poller"
	"github.com/noahops/console-bfa-go/internal/service"
	"github.com/noahops/console-bfa-go/internal/state"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("core_api_url", cfg.CoreAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.String("poll_spec", cfg.PollSpec),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(context.Background(), cfg.OTLPEndpoint, "noah-ops-console")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	dashboardCache := cache.New[domain.Dashboard](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("core-api")
	bulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)

	// --- Core API client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	tokens := session.NewStatic(cfg.CoreAPIToken)
	client := coreapi.NewClient(httpClient, cfg.CoreAPIURL, tokens, cb, resilienceCfg, logger)

	payments := coreapi.NewPaymentsStore(client)
	plans := coreapi.NewPlansStore(client)
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

	// --- State stores ---
	// Each resource gets a registry of per-scope stores so every admin,
	// company, and professional session sees only its own fetched data.
	paymentStates := state.NewRegistry[domain.Payment](func() *state.Store[domain.Payment] {
		return state.New[domain.Payment](payments,
			func(p domain.Payment) string { return p.ID }, logger,
			state.WithStaleHook[domain.Payment](func() { metrics.IncrStaleResponse("payment") }))
	})
	planStates := state.NewRegistry[domain.Plan](func() *state.Store[domain.Plan] {
		return state.New[domain.Plan](plans,
			func(p domain.Plan) string { return p.ID }, logger,
			state.WithStaleHook[domain.Plan](func() { metrics.IncrStaleResponse("plan") }))
	})
	teamStates := state.NewRegistry[domain.Team](func() *state.Store[domain.Team] {
		return state.New[domain.Team](teams,
			func(t domain.Team) string { return t.ID }, logger,
			state.WithStaleHook[domain.Team](func() { metrics.IncrStaleResponse("team") }))
	})
	professionalStates := state.NewRegistry[domain.Professional](func() *state.Store[domain.Professional] {
		return state.New[domain.Professional](professionals,
			func(p domain.Professional) string { return p.ID }, logger,
			state.WithStaleHook[domain.Professional](func() { metrics.IncrStaleResponse("professional") }))
	})
	customerStates := state.NewRegistry[domain.Customer](func() *state.Store[domain.Customer] {
		return state.New[domain.Customer](customers,
			func(c domain.Customer) string { return c.ID }, logger,
			state.WithStaleHook[domain.Customer](func() { metrics.IncrStaleResponse("customer") }))
	})
	appointmentStates := state.NewRegistry[domain.Appointment](func() *state.Store[domain.Appointment] {
		return state.New[domain.Appointment](appointments,
			func(a domain.Appointment) string { return a.ID }, logger,
			state.WithStaleHook[domain.Appointment](func() { metrics.IncrStaleResponse("appointment") }))
	})
	checkRecordStates := state.NewRegistry[domain.CheckRecord](func() *state.Store[domain.CheckRecord] {
		return state.New[domain.CheckRecord](checkRecords,
			func(c domain.CheckRecord) string { return c.ID }, logger,
			state.WithStaleHook[domain.CheckRecord](func() { metrics.IncrStaleResponse("checkrecord") }))
	})
	materialStates := state.NewRegistry[domain.Material](func() *state.Store[domain.Material] {
		return state.New[domain.Material](materials,
			func(m domain.Material) string { return m.ID }, logger,
			state.WithStaleHook[domain.Material](func() { metrics.IncrStaleResponse("material") }))
	})
	trackingStates := state.NewRegistry[domain.TrackingRecord](func() *state.Store[domain.TrackingRecord] {
		return state.New[domain.TrackingRecord](tracking,
			func(t domain.TrackingRecord) string { return t.ID }, logger,
			state.WithStaleHook[domain.TrackingRecord](func() { metrics.IncrStaleResponse("tracking") }))
	})
	reviewStates := state.NewRegistry[domain.Review](func() *state.Store[domain.Review] {
		return state.New[domain.Review](reviews,
			func(r domain.Review) string { return r.ID }, logger)
	})
	companyStates := state.NewRegistry[domain.Company](func() *state.Store[domain.Company] {
		return state.New[domain.Company](companies,
			func(c domain.Company) string { return c.ID }, logger)
	})

	// Notifications are a broadcast feed filtered per recipient, so one
	// shared store is the right shape there.
	notificationState := state.New[domain.Notification](notifications,
		func(n domain.Notification) string { return n.ID }, logger,
		state.WithStaleHook[domain.Notification](func() { metrics.IncrStaleResponse("notification") }))

	// --- Services ---
	notificationSvc := service.NewNotificationService(notifications, notificationState, metrics, logger)
	svcs := handler.Services{
		Payments:      service.NewPaymentService(payments, paymentStates, metrics, logger),
		Dashboard:     service.NewDashboardService(payments, teams, appointments, materials, reviews, dashboardCache, bulkhead, metrics, logger),
		Notifications: notificationSvc,
		CheckIn:       service.NewCheckInService(checkRecords, checkRecordStates, metrics, logger),
		Materials:     service.NewMaterialService(materials, materialStates, metrics, logger),

		Teams:         service.NewResourceService[domain.Team, domain.TeamRequest]("team", teamStates, metrics, logger),
		Plans:         service.NewResourceService[domain.Plan, domain.PlanRequest]("plan", planStates, metrics, logger),
		Professionals: service.NewResourceService[domain.Professional, domain.ProfessionalRequest]("professional", professionalStates, metrics, logger),
		Customers:     service.NewResourceService[domain.Customer, domain.CustomerRequest]("customer", customerStates, metrics, logger),
		Appointments:  service.NewResourceService[domain.Appointment, domain.AppointmentRequest]("appointment", appointmentStates, metrics, logger),
		Tracking:      service.NewResourceService[domain.TrackingRecord, struct{}]("tracking", trackingStates, metrics, logger),
		Reviews:       service.NewResourceService[domain.Review, struct{}]("review", reviewStates, metrics, logger),
		Companies:     service.NewResourceService[domain.Company, struct{}]("company", companyStates, metrics, logger),
	}

	// --- Background refresh ---
	// The fleet-wide tracking refresh is admin data; it warms the admin view
	// only, never a company or professional one.
	refresher := poller.New(trackingStates.For(handler.AdminScope), notificationSvc, dashboardCache, logger)
	if err := refresher.Start(cfg.PollSpec); err != nil {
		logger.Fatal("failed to start poller", zap.Error(err))
	}
	defer refresher.Stop()

	// --- Router ---
	router := handler.NewRouter(svcs, metrics, handler.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
