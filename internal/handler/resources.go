package handler

import (
	"context"
	"net/http"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Request scoping
//
// Every portal request works against its own partition of the
// per-resource state stores, keyed by the token's identity, so
// one tenant's view never reaches another. The scope also
// carries the filters forced from the token.
// ============================================================

// AdminScope keys the all-tenant view served by the admin portal.
const AdminScope = "admin"

type requestScope struct {
	key     string
	filters map[string]string
}

type scopeFunc func(context.Context) requestScope

func adminScope(context.Context) requestScope {
	return requestScope{key: AdminScope}
}

func companyScope(ctx context.Context) requestScope {
	id := CompanyIDFromContext(ctx)
	return requestScope{
		key:     "company:" + id,
		filters: map[string]string{"companyId": id},
	}
}

func professionalScope(ctx context.Context) requestScope {
	id := UserIDFromContext(ctx)
	return requestScope{
		key:     "professional:" + id,
		filters: map[string]string{"professionalId": id},
	}
}

// scopedFilters merges the query filters with the ones forced from the
// token; the token always wins.
func scopedFilters(r *http.Request, sc requestScope, keys ...string) map[string]string {
	filters := parseFilters(r, keys...)
	for k, v := range sc.filters {
		filters[k] = v
	}
	return filters
}

// ============================================================
// Generic CRUD Handlers
//
// The plain resources (teams, plans, professionals, customers,
// appointments, tracking, reviews, companies) all share these.
// ============================================================

func listResourceHandler[T any, R any](svc *service.ResourceService[T, R], logger *zap.Logger, scope scopeFunc, filterKeys ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET list")
		defer span.End()

		sc := scope(ctx)
		items, pagination, err := svc.List(ctx, sc.key, parsePagination(r), scopedFilters(r, sc, filterKeys...))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, pageResponse[T]{Results: items, Pagination: pagination})
	}
}

func createResourceHandler[T any, R any](svc *service.ResourceService[T, R], logger *zap.Logger, scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST create")
		defer span.End()

		req, err := decodeBody[R](r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		created, err := svc.Create(ctx, scope(ctx).key, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateResourceHandler[T any, R any](svc *service.ResourceService[T, R], logger *zap.Logger, scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT update")
		defer span.End()

		req, err := decodeBody[R](r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		updated, err := svc.Update(ctx, scope(ctx).key, chi.URLParam(r, "id"), req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteResourceHandler[T any, R any](svc *service.ResourceService[T, R], logger *zap.Logger, scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE delete")
		defer span.End()

		if err := svc.Delete(ctx, scope(ctx).key, chi.URLParam(r, "id")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Client-side search endpoints (filter the scope's fetched list)
// ============================================================

func searchTeamsHandler(svc *service.ResourceService[domain.Team, domain.TeamRequest], logger *zap.Logger, scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET teams/search")
		defer span.End()

		query := r.URL.Query().Get("q")
		var status *domain.TeamStatus
		if v := r.URL.Query().Get("status"); v != "" {
			parsed, err := parseIntStatus(v)
			if err != nil {
				handleServiceError(w, err, logger)
				return
			}
			s := domain.TeamStatus(parsed)
			status = &s
		}
		items := svc.Store(scope(ctx).key).Items()
		writeJSON(w, http.StatusOK, service.FilterTeams(items, query, status))
	}
}

func searchPlansHandler(svc *service.ResourceService[domain.Plan, domain.PlanRequest], logger *zap.Logger, scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET plans/search")
		defer span.End()

		query := r.URL.Query().Get("q")
		var status *domain.PlanStatus
		if v := r.URL.Query().Get("status"); v != "" {
			parsed, err := parseIntStatus(v)
			if err != nil {
				handleServiceError(w, err, logger)
				return
			}
			s := domain.PlanStatus(parsed)
			status = &s
		}
		items := svc.Store(scope(ctx).key).Items()
		writeJSON(w, http.StatusOK, service.FilterPlans(items, query, status))
	}
}

func searchProfessionalsHandler(svc *service.ResourceService[domain.Professional, domain.ProfessionalRequest], logger *zap.Logger, scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET professionals/search")
		defer span.End()

		query := r.URL.Query().Get("q")
		var status *domain.ProfessionalStatus
		if v := r.URL.Query().Get("status"); v != "" {
			parsed, err := parseIntStatus(v)
			if err != nil {
				handleServiceError(w, err, logger)
				return
			}
			s := domain.ProfessionalStatus(parsed)
			status = &s
		}
		items := svc.Store(scope(ctx).key).Items()
		writeJSON(w, http.StatusOK, service.FilterProfessionals(items, query, status))
	}
}
