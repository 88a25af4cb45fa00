// Package state implements the per-resource client state store: the
// in-memory list, filter set, selection and paging the portals render from.
// One generic store replaces the copy-pasted provider skeleton the old
// console carried per resource; resource-specific operations live in the
// service layer on top.
package state

import (
	"context"
	"sync"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/port"

	"go.uber.org/zap"
)

// Store holds the client-side state for one backend resource. All methods
// are safe for concurrent use; within one store the in-memory list follows
// last-write-wins, except that fetch responses are ordered by a per-store
// sequence number so a slow stale response can never overwrite a newer one.
type Store[T any] struct {
	backend port.Resource[T]
	id      func(T) string
	logger  *zap.Logger

	mu         sync.Mutex
	items      []T
	filters    map[string]string
	selected   *T
	pagination domain.Pagination
	loading    bool
	err        error

	issuedSeq  uint64
	appliedSeq uint64

	onStale func()
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithStaleHook registers a callback invoked whenever a fetch response is
// discarded for arriving after a newer one, typically to bump a counter.
func WithStaleHook[T any](hook func()) Option[T] {
	return func(s *Store[T]) { s.onStale = hook }
}

// New creates a store over the given backend. id extracts an entity's
// identifier for merge-by-id operations.
func New[T any](backend port.Resource[T], id func(T) string, logger *zap.Logger, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		backend: backend,
		id:      id,
		logger:  logger,
		items:   []T{},
		filters: map[string]string{},
		pagination: domain.Pagination{
			CurrentPage: 1,
			PageSize:    10,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch loads a page from the backend with the store's filters merged with
// extra, replaces the list and reconciles pagination. A zero req field keeps
// the current value. Responses are applied in request order: if a newer
// fetch has already landed, this one is discarded.
func (s *Store[T]) Fetch(ctx context.Context, req domain.PageRequest, extra map[string]string) error {
	s.mu.Lock()
	s.issuedSeq++
	seq := s.issuedSeq
	s.loading = true
	if req.Page > 0 {
		s.pagination.CurrentPage = req.Page
	}
	if req.PageSize > 0 {
		s.pagination.PageSize = req.PageSize
	}
	filters := mergeFilters(s.filters, extra)
	pageReq := domain.PageRequest{Page: s.pagination.CurrentPage, PageSize: s.pagination.PageSize}
	s.mu.Unlock()

	page, err := s.backend.List(ctx, filters, pageReq)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.appliedSeq {
		s.logger.Debug("state: discarding stale fetch response",
			zap.Uint64("seq", seq),
			zap.Uint64("applied", s.appliedSeq),
		)
		if s.onStale != nil {
			s.onStale()
		}
		return nil
	}
	s.appliedSeq = seq
	// Keep the spinner on if an even newer fetch is still in flight.
	s.loading = s.issuedSeq != seq

	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	s.items = page.Results
	s.pagination = domain.Pagination{
		CurrentPage: page.CurrentPage,
		PageCount:   page.PageCount,
		PageSize:    page.PageSize,
		TotalItems:  page.TotalItems,
	}.Clamp()
	return nil
}

// Refresh re-runs the last fetch with the current filters and page.
func (s *Store[T]) Refresh(ctx context.Context) error {
	return s.Fetch(ctx, domain.PageRequest{}, nil)
}

// Create posts the payload and prepends the server's returned entity. The
// error is returned to the caller (so a form can stay open) after being
// recorded on the store.
func (s *Store[T]) Create(ctx context.Context, payload any) (*T, error) {
	item, err := s.backend.Create(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		return nil, err
	}
	s.err = nil
	s.items = append([]T{*item}, s.items...)
	s.pagination.TotalItems++
	return item, nil
}

// Update puts the payload and replaces the matching entity by id equality.
// The selection follows the edit when it pointed at the same entity.
func (s *Store[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	item, err := s.backend.Update(ctx, id, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		return nil, err
	}
	s.err = nil
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items[i] = *item
			break
		}
	}
	if s.selected != nil && s.id(*s.selected) == id {
		copied := *item
		s.selected = &copied
	}
	return item, nil
}

// Merge replaces (or prepends) an entity the caller obtained through a
// resource-specific operation, e.g. a status transition.
func (s *Store[T]) Merge(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id(item)
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items[i] = item
			if s.selected != nil && s.id(*s.selected) == id {
				copied := item
				s.selected = &copied
			}
			return
		}
	}
	s.items = append([]T{item}, s.items...)
	s.pagination.TotalItems++
}

// Remove deletes the entity and drops it from the list; the selection is
// cleared when it pointed at the removed entity.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	err := s.backend.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	kept := s.items[:0:0]
	for _, item := range s.items {
		if s.id(item) != id {
			kept = append(kept, item)
		}
	}
	if len(kept) < len(s.items) && s.pagination.TotalItems > 0 {
		s.pagination.TotalItems--
	}
	s.items = kept
	if s.selected != nil && s.id(*s.selected) == id {
		s.selected = nil
	}
	s.pagination = s.pagination.Clamp()
	return nil
}

// SetFilters shallow-merges the partial filter map. An empty value removes
// the key. It never triggers a refetch; callers fetch when ready.
func (s *Store[T]) SetFilters(partial map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = mergeFilters(s.filters, partial)
}

// Select marks the entity with the given id as selected. Returns false when
// it is not in the current list.
func (s *Store[T]) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.id(s.items[i]) == id {
			copied := s.items[i]
			s.selected = &copied
			return true
		}
	}
	return false
}

// ClearSelection drops the current selection.
func (s *Store[T]) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Items returns a copy of the current list.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Selected returns a copy of the selected entity, or nil.
func (s *Store[T]) Selected() *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	copied := *s.selected
	return &copied
}

// Pagination returns the reconciled paging state.
func (s *Store[T]) Pagination() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Loading reports whether a fetch is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last operation error, or nil after a success.
func (s *Store[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Filters returns a copy of the active filter map.
func (s *Store[T]) Filters() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mergeFilters(nil, s.filters)
}

func mergeFilters(base, partial map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(partial))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range partial {
		if v == "" {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return merged
}
