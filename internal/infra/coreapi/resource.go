package coreapi

import (
	"context"
	"fmt"

	"github.com/noahops/console-bfa-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// resource implements the uniform CRUD contract for one backend resource.
// Per-resource stores embed it and add their specific extra operations
// (status transitions, stock patches, mark-read).
type resource[T any] struct {
	c        *Client
	base     string // entity path, e.g. "/Payments"
	listBase string // list path when it differs, e.g. "/Team/paged"
	name     string // resource label for errors and spans
	service  string // service label for ErrExternalService
}

func newResource[T any](c *Client, base, name string) *resource[T] {
	return &resource[T]{
		c:        c,
		base:     base,
		listBase: base,
		name:     name,
		service:  "coreapi/" + name,
	}
}

// newPagedResource is for resources whose list lives on a dedicated
// ".../paged" route while single-entity operations stay on the base path.
func newPagedResource[T any](c *Client, base, listBase, name string) *resource[T] {
	r := newResource[T](c, base, name)
	r.listBase = listBase
	return r
}

func (r *resource[T]) List(ctx context.Context, filters map[string]string, page domain.PageRequest) (*domain.Page[T], error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.List."+r.name)
	defer span.End()
	span.SetAttributes(attribute.Int("page", page.Page))

	body, err := r.c.getResilient(ctx, listPath(r.listBase, filters, page))
	if err != nil {
		return nil, wrapErr(err, r.service, r.name, "")
	}
	return decodePage[T](body, r.name)
}

func (r *resource[T]) Get(ctx context.Context, id string) (*T, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.Get."+r.name)
	defer span.End()

	body, err := r.c.getResilient(ctx, fmt.Sprintf("%s/%s", r.base, id))
	if err != nil {
		return nil, wrapErr(err, r.service, r.name, id)
	}
	return decodeOne[T](body, r.name)
}

func (r *resource[T]) Create(ctx context.Context, payload any) (*T, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.Create."+r.name)
	defer span.End()

	body, err := r.c.post(ctx, r.base, payload)
	if err != nil {
		return nil, wrapErr(err, r.service, r.name, "")
	}
	return decodeOne[T](body, r.name)
}

func (r *resource[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.Update."+r.name)
	defer span.End()

	body, err := r.c.put(ctx, fmt.Sprintf("%s/%s", r.base, id), payload)
	if err != nil {
		return nil, wrapErr(err, r.service, r.name, id)
	}
	return decodeOne[T](body, r.name)
}

func (r *resource[T]) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "CoreAPI.Delete."+r.name)
	defer span.End()

	return wrapErr(r.c.delete(ctx, fmt.Sprintf("%s/%s", r.base, id)), r.service, r.name, id)
}
