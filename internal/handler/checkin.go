package handler

import (
	"net/http"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Check-in / Check-out Handlers (professional portal)
// ============================================================

func listCheckRecordsHandler(svc *service.CheckInService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /check-records")
		defer span.End()

		sc := professionalScope(ctx)
		records, pagination, err := svc.List(ctx, sc.key, parsePagination(r), scopedFilters(r, sc))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		// Optional client-side narrowing of the fetched page.
		records = service.FilterCheckRecords(records,
			r.URL.Query().Get("q"),
			r.URL.Query().Get("status"),
		)
		writeJSON(w, http.StatusOK, pageResponse[domain.CheckRecord]{Results: records, Pagination: pagination})
	}
}

func openCheckRecordHandler(svc *service.CheckInService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /check-records/open")
		defer span.End()

		open, err := svc.OpenRecord(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if open == nil {
			writeJSON(w, http.StatusOK, map[string]any{"open": nil})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"open": open})
	}
}

func checkInHandler(svc *service.CheckInService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /check-in")
		defer span.End()

		req, err := decodeBody[domain.CheckInRequest](r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		record, err := svc.CheckIn(ctx, professionalScope(ctx).key,
			UserIDFromContext(ctx), CompanyIDFromContext(ctx), req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, record)
	}
}

func checkOutHandler(svc *service.CheckInService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /check-out")
		defer span.End()

		req, err := decodeBody[domain.CheckOutRequest](r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		record, err := svc.CheckOut(ctx, professionalScope(ctx).key, UserIDFromContext(ctx), req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}
