// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/noahops/console-bfa-go/internal/domain"
)

// Resource is the uniform CRUD contract every core API resource store
// implements. List sends the merged filter map plus pagination and decodes
// the backend's page envelope; Create/Update take the raw form payload and
// return the server's authoritative copy, which callers merge locally.
type Resource[T any] interface {
	List(ctx context.Context, filters map[string]string, page domain.PageRequest) (*domain.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, body any) (*T, error)
	Update(ctx context.Context, id string, body any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// PaymentStore adds the status-transition request on top of plain CRUD.
// The backend owns the transition; the returned payment is merged as-is.
type PaymentStore interface {
	Resource[domain.Payment]
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Payment, error)
}

// PlanStore manages subscription plans (admin portal).
type PlanStore interface {
	Resource[domain.Plan]
}

// TeamStore lists company teams via the backend's paged endpoint.
type TeamStore interface {
	Resource[domain.Team]
}

// ProfessionalStore lists field workers via the backend's paged endpoint.
type ProfessionalStore interface {
	Resource[domain.Professional]
}

// CustomerStore manages a company's end clients.
type CustomerStore interface {
	Resource[domain.Customer]
}

// AppointmentStore manages scheduled visits.
type AppointmentStore interface {
	Resource[domain.Appointment]
}

// CheckRecordStore manages check-in/check-out records.
type CheckRecordStore interface {
	Resource[domain.CheckRecord]
}

// TrackingStore reads GPS position reports. Tracking is ingest-only on the
// backend side; the console never creates records, only lists them.
type TrackingStore interface {
	Resource[domain.TrackingRecord]
}

// NotificationStore adds the mark-read action on top of plain CRUD.
type NotificationStore interface {
	Resource[domain.Notification]
	MarkRead(ctx context.Context, id string) error
}

// MaterialStore adds the stock PATCH on top of plain CRUD.
type MaterialStore interface {
	Resource[domain.Material]
	AdjustStock(ctx context.Context, id string, adj domain.StockAdjustment) (*domain.Material, error)
}

// ReviewStore reads customer reviews.
type ReviewStore interface {
	Resource[domain.Review]
}

// CompanyStore reads tenant companies (admin portal).
type CompanyStore interface {
	Resource[domain.Company]
}

// TokenSource supplies the bearer token attached to every core API request.
// Injecting it keeps the session dependency explicit and mockable instead of
// reading ambient storage at every call site.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
