package handler

import (
	"net/http"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Notifications Handlers
// ============================================================

// listNotificationsHandler serves the bell menu: the notifications visible
// to the authenticated user, refreshed from the backend first.
func listNotificationsHandler(svc *service.NotificationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /notifications")
		defer span.End()

		if err := svc.Refresh(ctx); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, svc.VisibleTo(UserIDFromContext(ctx)))
	}
}

func unreadCountHandler(svc *service.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /notifications/unread")
		defer span.End()

		writeJSON(w, http.StatusOK, map[string]int{
			"unread": svc.UnreadCount(UserIDFromContext(ctx)),
		})
	}
}

func createNotificationHandler(svc *service.NotificationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /notifications")
		defer span.End()

		req, err := decodeBody[domain.NotificationRequest](r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		created, err := svc.Create(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func markNotificationReadHandler(svc *service.NotificationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /notifications/{id}/read")
		defer span.End()

		if err := svc.MarkRead(ctx, UserIDFromContext(ctx), chi.URLParam(r, "id")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func markAllNotificationsReadHandler(svc *service.NotificationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /notifications/read-all")
		defer span.End()

		if err := svc.MarkAllRead(ctx, UserIDFromContext(ctx)); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
