package service

import (
	"context"
	"time"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/port"
	"github.com/noahops/console-bfa-go/internal/state"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// NotificationService owns the bell menu: visible notifications for a
// recipient, the unread badge, creation (admin) and mark-read.
type NotificationService struct {
	backend  port.NotificationStore
	store    *state.Store[domain.Notification]
	metrics  *observability.Metrics
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewNotificationService creates the notification service.
func NewNotificationService(backend port.NotificationStore, store *state.Store[domain.Notification], metrics *observability.Metrics, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		backend:  backend,
		store:    store,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh reloads the notification list from the backend.
func (s *NotificationService) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "NotificationService.Refresh")
	defer span.End()

	if err := s.store.Refresh(ctx); err != nil {
		s.metrics.IncrCoreAPIError("notification")
		return err
	}
	return nil
}

// VisibleTo filters the current list down to what the recipient may see:
// broadcasts plus explicit targets, excluding not-yet-due scheduled ones.
func (s *NotificationService) VisibleTo(recipientID string) []domain.Notification {
	now := s.now()
	return Filter(s.store.Items(), func(n domain.Notification) bool {
		return n.VisibleTo(recipientID, now)
	})
}

// UnreadCount returns the badge number for a recipient.
func (s *NotificationService) UnreadCount(recipientID string) int {
	count := 0
	for _, n := range s.VisibleTo(recipientID) {
		if !n.Read {
			count++
		}
	}
	return count
}

// Create validates and posts a new notification (admin portal).
func (s *NotificationService) Create(ctx context.Context, req domain.NotificationRequest) (*domain.Notification, error) {
	ctx, span := tracer.Start(ctx, "NotificationService.Create")
	defer span.End()

	if err := s.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return nil, &domain.ErrValidation{Field: first.Field(), Message: "failed on '" + first.Tag() + "'"}
		}
		return nil, &domain.ErrValidation{Field: "request", Message: err.Error()}
	}
	if !req.Broadcast && len(req.RecipientIDs) == 0 {
		return nil, &domain.ErrValidation{Field: "recipientIds", Message: "targeted notification needs at least one recipient"}
	}

	created, err := s.store.Create(ctx, req)
	if err != nil {
		s.metrics.IncrCoreAPIError("notification")
		return nil, err
	}
	s.logger.Info("notification created",
		zap.String("type", created.Type),
		zap.Bool("broadcast", created.Broadcast),
	)
	return created, nil
}

// MarkRead flips one notification to read on the backend and locally. The
// notification must be visible to the recipient; marking someone else's is
// forbidden.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, id string) error {
	ctx, span := tracer.Start(ctx, "NotificationService.MarkRead")
	defer span.End()

	if !s.visible(recipientID, id) {
		// The bell menu may be stale; reload once before rejecting.
		if err := s.Refresh(ctx); err != nil {
			return err
		}
		if !s.visible(recipientID, id) {
			return &domain.ErrForbidden{Action: "mark another recipient's notification read"}
		}
	}

	if err := s.backend.MarkRead(ctx, id); err != nil {
		s.metrics.IncrCoreAPIError("notification")
		return err
	}

	for _, n := range s.store.Items() {
		if n.ID == id {
			n.Read = true
			s.store.Merge(n)
			break
		}
	}
	return nil
}

// MarkAllRead flips every unread visible notification for a recipient. The
// first backend failure aborts; already-flipped ones stay read.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	ctx, span := tracer.Start(ctx, "NotificationService.MarkAllRead")
	defer span.End()

	for _, n := range s.VisibleTo(recipientID) {
		if n.Read {
			continue
		}
		if err := s.MarkRead(ctx, recipientID, n.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *NotificationService) visible(recipientID, id string) bool {
	for _, n := range s.VisibleTo(recipientID) {
		if n.ID == id {
			return true
		}
	}
	return false
}
