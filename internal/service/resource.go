package service

import (
	"context"
	"time"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/state"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ResourceService is the shared use-case wrapper for plain CRUD resources:
// validate the form payload, run the operation through the caller's scoped
// state store, and record the metrics. scope partitions the state per tenant
// (the handler derives it from the token), so one company's view never
// bleeds into another's. Resource-specific behavior (payments,
// notifications, check-ins, materials) lives in its own service instead.
type ResourceService[T any, R any] struct {
	name     string
	states   *state.Registry[T]
	metrics  *observability.Metrics
	validate *validator.Validate
	logger   *zap.Logger
}

// NewResourceService creates a CRUD service for one resource. name labels
// metrics and log lines.
func NewResourceService[T any, R any](name string, states *state.Registry[T], metrics *observability.Metrics, logger *zap.Logger) *ResourceService[T, R] {
	return &ResourceService[T, R]{
		name:     name,
		states:   states,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger,
	}
}

// List fetches a page into the scope's state store and returns the current
// view.
func (s *ResourceService[T, R]) List(ctx context.Context, scope string, req domain.PageRequest, filters map[string]string) ([]T, domain.Pagination, error) {
	ctx, span := tracer.Start(ctx, "ResourceService.List."+s.name)
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration(s.name+".list", time.Since(start)) }()

	store := s.states.For(scope)
	if err := store.Fetch(ctx, req, filters); err != nil {
		s.metrics.IncrCoreAPIError(s.name)
		return nil, store.Pagination(), err
	}
	return store.Items(), store.Pagination(), nil
}

// Create validates the form payload and posts it, prepending the server's
// copy to the scope's list.
func (s *ResourceService[T, R]) Create(ctx context.Context, scope string, req R) (*T, error) {
	ctx, span := tracer.Start(ctx, "ResourceService.Create."+s.name)
	defer span.End()

	if err := s.checkValid(req); err != nil {
		return nil, err
	}

	created, err := s.states.For(scope).Create(ctx, req)
	if err != nil {
		s.metrics.IncrCoreAPIError(s.name)
		return nil, err
	}
	s.logger.Info("resource created", zap.String("resource", s.name))
	return created, nil
}

// Update validates the form payload and puts it, replacing the entity in the
// scope's list.
func (s *ResourceService[T, R]) Update(ctx context.Context, scope, id string, req R) (*T, error) {
	ctx, span := tracer.Start(ctx, "ResourceService.Update."+s.name)
	defer span.End()

	if err := s.checkValid(req); err != nil {
		return nil, err
	}

	updated, err := s.states.For(scope).Update(ctx, id, req)
	if err != nil {
		s.metrics.IncrCoreAPIError(s.name)
		return nil, err
	}
	return updated, nil
}

// Delete removes the entity on the backend and from the scope's list.
func (s *ResourceService[T, R]) Delete(ctx context.Context, scope, id string) error {
	ctx, span := tracer.Start(ctx, "ResourceService.Delete."+s.name)
	defer span.End()

	if err := s.states.For(scope).Remove(ctx, id); err != nil {
		s.metrics.IncrCoreAPIError(s.name)
		return err
	}
	s.logger.Info("resource deleted", zap.String("resource", s.name), zap.String("id", id))
	return nil
}

// SetFilters merges the partial filter map into the scope's store without
// fetching.
func (s *ResourceService[T, R]) SetFilters(scope string, partial map[string]string) {
	s.states.For(scope).SetFilters(partial)
}

// Store exposes one scope's state store for read access.
func (s *ResourceService[T, R]) Store(scope string) *state.Store[T] { return s.states.For(scope) }

func (s *ResourceService[T, R]) checkValid(req R) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return &domain.ErrValidation{
			Field:   first.Field(),
			Message: "failed on '" + first.Tag() + "'",
		}
	}
	return &domain.ErrValidation{Field: "request", Message: err.Error()}
}
