package handler

import (
	"net/http"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Materials Handlers (company portal)
// ============================================================

func adjustStockHandler(svc *service.MaterialService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /materials/{id}/stock")
		defer span.End()

		adj, err := decodeBody[domain.StockAdjustment](r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		updated, err := svc.AdjustStock(ctx, companyScope(ctx).key, chi.URLParam(r, "id"), adj)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func lowStockHandler(svc *service.MaterialService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /materials/low-stock")
		defer span.End()

		sc := companyScope(ctx)
		low, err := svc.LowStock(ctx, sc.key, CompanyIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, low)
	}
}
