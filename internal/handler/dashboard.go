package handler

import (
	"net/http"

	"github.com/noahops/console-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Dashboard Handler (company portal)
// ============================================================

func dashboardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /dashboard")
		defer span.End()

		companyID := CompanyIDFromContext(ctx)
		if companyID == "" {
			writeError(w, http.StatusUnprocessableEntity, "no company on the session")
			return
		}

		summary, err := svc.Summary(ctx, companyID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
