package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/service"
	"github.com/noahops/console-bfa-go/internal/state"

	"go.uber.org/zap"
)

type fakeNotificationStore struct {
	page    *domain.Page[domain.Notification]
	readIDs []string
}

func (f *fakeNotificationStore) List(_ context.Context, _ map[string]string, _ domain.PageRequest) (*domain.Page[domain.Notification], error) {
	return f.page, nil
}

func (f *fakeNotificationStore) Get(_ context.Context, id string) (*domain.Notification, error) {
	return nil, &domain.ErrNotFound{Resource: "notification", ID: id}
}

func (f *fakeNotificationStore) Create(_ context.Context, body any) (*domain.Notification, error) {
	req := body.(domain.NotificationRequest)
	return &domain.Notification{
		ID:           "n-new",
		Title:        req.Title,
		Message:      req.Message,
		Type:         req.Type,
		Broadcast:    req.Broadcast,
		RecipientIDs: req.RecipientIDs,
		CreatedAt:    time.Now(),
	}, nil
}

func (f *fakeNotificationStore) Update(_ context.Context, _ string, _ any) (*domain.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationStore) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeNotificationStore) MarkRead(_ context.Context, id string) error {
	f.readIDs = append(f.readIDs, id)
	return nil
}

func notificationID(n domain.Notification) string { return n.ID }

func newNotificationService(backend *fakeNotificationStore) (*service.NotificationService, *state.Store[domain.Notification]) {
	store := state.New[domain.Notification](backend, notificationID, zap.NewNop())
	svc := service.NewNotificationService(backend, store, observability.NewMetrics(), zap.NewNop())
	return svc, store
}

func TestVisibleTo_TargetingRules(t *testing.T) {
	future := time.Now().Add(time.Hour)
	backend := &fakeNotificationStore{
		page: &domain.Page[domain.Notification]{
			Results: []domain.Notification{
				{ID: "n1", Broadcast: true},
				{ID: "n2", RecipientIDs: []string{"user-1"}},
				{ID: "n3", RecipientIDs: []string{"user-2"}},
				{ID: "n4", Broadcast: true, ScheduledFor: &future},
			},
			CurrentPage: 1, PageCount: 1, PageSize: 10, TotalItems: 4,
		},
	}
	svc, _ := newNotificationService(backend)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	visible := svc.VisibleTo("user-1")
	ids := map[string]bool{}
	for _, n := range visible {
		ids[n.ID] = true
	}
	if !ids["n1"] || !ids["n2"] {
		t.Errorf("broadcast and targeted notifications should be visible, got %v", ids)
	}
	if ids["n3"] {
		t.Error("other users' notifications must stay hidden")
	}
	if ids["n4"] {
		t.Error("scheduled notifications stay hidden until due")
	}
}

func TestUnreadCount(t *testing.T) {
	backend := &fakeNotificationStore{
		page: &domain.Page[domain.Notification]{
			Results: []domain.Notification{
				{ID: "n1", Broadcast: true, Read: true},
				{ID: "n2", Broadcast: true},
				{ID: "n3", RecipientIDs: []string{"user-1"}},
			},
			CurrentPage: 1, PageCount: 1, PageSize: 10, TotalItems: 3,
		},
	}
	svc, _ := newNotificationService(backend)
	svc.Refresh(context.Background())

	if got := svc.UnreadCount("user-1"); got != 2 {
		t.Errorf("expected 2 unread, got %d", got)
	}
}

func TestMarkRead_FlipsLocalCopy(t *testing.T) {
	backend := &fakeNotificationStore{
		page: &domain.Page[domain.Notification]{
			Results:     []domain.Notification{{ID: "n1", Broadcast: true}},
			CurrentPage: 1, PageCount: 1, PageSize: 10, TotalItems: 1,
		},
	}
	svc, store := newNotificationService(backend)
	svc.Refresh(context.Background())

	if err := svc.MarkRead(context.Background(), "user-1", "n1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(backend.readIDs) != 1 || backend.readIDs[0] != "n1" {
		t.Errorf("backend mark-read not called: %v", backend.readIDs)
	}
	if items := store.Items(); !items[0].Read {
		t.Error("local copy should flip to read")
	}
}

func TestMarkRead_RejectsInvisibleNotification(t *testing.T) {
	backend := &fakeNotificationStore{
		page: &domain.Page[domain.Notification]{
			Results:     []domain.Notification{{ID: "n1", RecipientIDs: []string{"user-2"}}},
			CurrentPage: 1, PageCount: 1, PageSize: 10, TotalItems: 1,
		},
	}
	svc, _ := newNotificationService(backend)
	svc.Refresh(context.Background())

	err := svc.MarkRead(context.Background(), "user-1", "n1")

	var forbidden *domain.ErrForbidden
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if len(backend.readIDs) != 0 {
		t.Errorf("backend must not be asked to mark another recipient's notification: %v", backend.readIDs)
	}
}

func TestCreate_TargetedNeedsRecipients(t *testing.T) {
	backend := &fakeNotificationStore{}
	svc, _ := newNotificationService(backend)

	_, err := svc.Create(context.Background(), domain.NotificationRequest{
		Title:   "maintenance",
		Message: "tonight",
		Type:    domain.NotifyWarning,
	})
	if err == nil {
		t.Fatal("expected validation error for targeted notification without recipients")
	}
}
