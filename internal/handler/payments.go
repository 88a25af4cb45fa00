package handler

import (
	"net/http"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Payments Handlers
// ============================================================

// listPaymentsHandler serves the payments table. Company-portal requests are
// always scoped to the token's company; admin sees everything.
func listPaymentsHandler(svc *service.PaymentService, logger *zap.Logger, scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payments")
		defer span.End()

		sc := scope(ctx)
		payments, pagination, err := svc.List(ctx, sc.key, parsePagination(r), scopedFilters(r, sc, "companyId", "status"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, pageResponse[domain.Payment]{Results: payments, Pagination: pagination})
	}
}

func getPaymentHandler(svc *service.PaymentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payments/{id}")
		defer span.End()

		payment, err := svc.Get(ctx, chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, payment)
	}
}

func paymentStatisticsHandler(svc *service.PaymentService, logger *zap.Logger, scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payments/statistics")
		defer span.End()

		stats, err := svc.Statistics(ctx, scopedFilters(r, scope(ctx), "companyId", "status"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func updatePaymentStatusHandler(svc *service.PaymentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /payments/{id}/status")
		defer span.End()

		req, err := decodeBody[domain.UpdatePaymentStatusRequest](r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		updated, err := svc.UpdateStatus(ctx, AdminScope, chi.URLParam(r, "id"), req.Status)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}
