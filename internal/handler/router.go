package handler

import (
	"net/http"
	"time"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles everything the router serves.
type Services struct {
	Payments      *service.PaymentService
	Dashboard     *service.DashboardService
	Notifications *service.NotificationService
	CheckIn       *service.CheckInService
	Materials     *service.MaterialService

	Teams         *service.ResourceService[domain.Team, domain.TeamRequest]
	Plans         *service.ResourceService[domain.Plan, domain.PlanRequest]
	Professionals *service.ResourceService[domain.Professional, domain.ProfessionalRequest]
	Customers     *service.ResourceService[domain.Customer, domain.CustomerRequest]
	Appointments  *service.ResourceService[domain.Appointment, domain.AppointmentRequest]
	Tracking      *service.ResourceService[domain.TrackingRecord, struct{}]
	Reviews       *service.ResourceService[domain.Review, struct{}]
	Companies     *service.ResourceService[domain.Company, struct{}]
}

// RouterConfig carries the router's own knobs.
type RouterConfig struct {
	JWTSecret      string
	AllowedOrigins []string
}

// NewRouter creates the HTTP router with all routes and middleware. The
// three portals hang off /v1 behind the shared JWT middleware, each locked
// to its role.
func NewRouter(svcs Services, metrics *observability.Metrics, cfg RouterConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.RequestCounterMiddleware(metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(JWTAuthMiddleware(cfg.JWTSecret, logger))

		// =============================================
		// Admin portal
		// =============================================
		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireRole(logger, RoleAdmin))

			r.Get("/payments", listPaymentsHandler(svcs.Payments, logger, adminScope))
			r.Get("/payments/statistics", paymentStatisticsHandler(svcs.Payments, logger, adminScope))
			r.Get("/payments/{id}", getPaymentHandler(svcs.Payments, logger))
			r.Patch("/payments/{id}/status", updatePaymentStatusHandler(svcs.Payments, logger))

			r.Get("/plans", listResourceHandler(svcs.Plans, logger, adminScope, "status"))
			r.Get("/plans/search", searchPlansHandler(svcs.Plans, logger, adminScope))
			r.Post("/plans", createResourceHandler(svcs.Plans, logger, adminScope))
			r.Put("/plans/{id}", updateResourceHandler(svcs.Plans, logger, adminScope))
			r.Delete("/plans/{id}", deleteResourceHandler(svcs.Plans, logger, adminScope))

			r.Get("/companies", listResourceHandler(svcs.Companies, logger, adminScope, "status"))
			r.Get("/tracking", listResourceHandler(svcs.Tracking, logger, adminScope, "professionalId", "status"))

			r.Get("/notifications", listNotificationsHandler(svcs.Notifications, logger))
			r.Post("/notifications", createNotificationHandler(svcs.Notifications, logger))

			r.Get("/metrics/ops", opsMetricsHandler(metrics))
		})

		// =============================================
		// Company portal
		// =============================================
		r.Route("/company", func(r chi.Router) {
			r.Use(RequireRole(logger, RoleCompany))

			r.Get("/dashboard", dashboardHandler(svcs.Dashboard, logger))

			r.Get("/payments", listPaymentsHandler(svcs.Payments, logger, companyScope))
			r.Get("/payments/statistics", paymentStatisticsHandler(svcs.Payments, logger, companyScope))

			r.Get("/teams", listResourceHandler(svcs.Teams, logger, companyScope, "status"))
			r.Get("/teams/search", searchTeamsHandler(svcs.Teams, logger, companyScope))
			r.Post("/teams", createResourceHandler(svcs.Teams, logger, companyScope))
			r.Put("/teams/{id}", updateResourceHandler(svcs.Teams, logger, companyScope))
			r.Delete("/teams/{id}", deleteResourceHandler(svcs.Teams, logger, companyScope))

			r.Get("/professionals", listResourceHandler(svcs.Professionals, logger, companyScope, "status", "teamId"))
			r.Get("/professionals/search", searchProfessionalsHandler(svcs.Professionals, logger, companyScope))
			r.Post("/professionals", createResourceHandler(svcs.Professionals, logger, companyScope))
			r.Put("/professionals/{id}", updateResourceHandler(svcs.Professionals, logger, companyScope))
			r.Delete("/professionals/{id}", deleteResourceHandler(svcs.Professionals, logger, companyScope))

			r.Get("/customers", listResourceHandler(svcs.Customers, logger, companyScope, "status"))
			r.Post("/customers", createResourceHandler(svcs.Customers, logger, companyScope))
			r.Put("/customers/{id}", updateResourceHandler(svcs.Customers, logger, companyScope))
			r.Delete("/customers/{id}", deleteResourceHandler(svcs.Customers, logger, companyScope))

			r.Get("/appointments", listResourceHandler(svcs.Appointments, logger, companyScope, "status", "teamId"))
			r.Post("/appointments", createResourceHandler(svcs.Appointments, logger, companyScope))
			r.Put("/appointments/{id}", updateResourceHandler(svcs.Appointments, logger, companyScope))
			r.Delete("/appointments/{id}", deleteResourceHandler(svcs.Appointments, logger, companyScope))

			r.Get("/materials", listResourceHandler(svcs.Materials.ResourceService, logger, companyScope, "status"))
			r.Get("/materials/low-stock", lowStockHandler(svcs.Materials, logger))
			r.Post("/materials", createResourceHandler(svcs.Materials.ResourceService, logger, companyScope))
			r.Put("/materials/{id}", updateResourceHandler(svcs.Materials.ResourceService, logger, companyScope))
			r.Delete("/materials/{id}", deleteResourceHandler(svcs.Materials.ResourceService, logger, companyScope))
			r.Patch("/materials/{id}/stock", adjustStockHandler(svcs.Materials, logger))

			r.Get("/reviews", listResourceHandler(svcs.Reviews, logger, companyScope, "teamId"))
			r.Get("/tracking", listResourceHandler(svcs.Tracking, logger, companyScope, "professionalId", "status"))

			r.Get("/notifications", listNotificationsHandler(svcs.Notifications, logger))
			r.Get("/notifications/unread", unreadCountHandler(svcs.Notifications))
			r.Post("/notifications", createNotificationHandler(svcs.Notifications, logger))
			r.Post("/notifications/{id}/read", markNotificationReadHandler(svcs.Notifications, logger))
			r.Post("/notifications/read-all", markAllNotificationsReadHandler(svcs.Notifications, logger))
		})

		// =============================================
		// Professional portal
		// =============================================
		r.Route("/professional", func(r chi.Router) {
			r.Use(RequireRole(logger, RoleProfessional))

			r.Get("/appointments", listResourceHandler(svcs.Appointments, logger, professionalScope, "status", "teamId"))

			r.Get("/check-records", listCheckRecordsHandler(svcs.CheckIn, logger))
			r.Get("/check-records/open", openCheckRecordHandler(svcs.CheckIn, logger))
			r.Post("/check-in", checkInHandler(svcs.CheckIn, logger))
			r.Post("/check-out", checkOutHandler(svcs.CheckIn, logger))

			r.Get("/notifications", listNotificationsHandler(svcs.Notifications, logger))
			r.Get("/notifications/unread", unreadCountHandler(svcs.Notifications))
			r.Post("/notifications/{id}/read", markNotificationReadHandler(svcs.Notifications, logger))
		})
	})

	return r
}

var startTime = time.Now()

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func opsMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetOpsSnapshot())
	}
}
