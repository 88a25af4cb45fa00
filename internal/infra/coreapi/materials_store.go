package coreapi

import (
	"context"
	"fmt"

	"github.com/noahops/console-bfa-go/internal/domain"
)

// MaterialsStore talks to /Material. Implements port.MaterialStore.
type MaterialsStore struct {
	*resource[domain.Material]
}

// NewMaterialsStore creates the materials store.
func NewMaterialsStore(c *Client) *MaterialsStore {
	return &MaterialsStore{resource: newResource[domain.Material](c, "/Material", "material")}
}

// AdjustStock patches the stock quantity by a signed delta and returns the
// backend's updated material.
func (s *MaterialsStore) AdjustStock(ctx context.Context, id string, adj domain.StockAdjustment) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.AdjustMaterialStock")
	defer span.End()

	body, err := s.c.patch(ctx, fmt.Sprintf("/Material/%s/stock", id), adj)
	if err != nil {
		return nil, wrapErr(err, s.service, s.name, id)
	}
	return decodeOne[domain.Material](body, s.name)
}
