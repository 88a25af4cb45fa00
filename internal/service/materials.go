package service

import (
	"context"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/port"
	"github.com/noahops/console-bfa-go/internal/state"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// lowStockPageSize bounds the low-stock fetch; inventories past this many
// records get a truncated view.
const lowStockPageSize = 200

// MaterialService owns the inventory page: plain CRUD plus the signed stock
// adjustment and the low-stock view.
type MaterialService struct {
	*ResourceService[domain.Material, domain.MaterialRequest]
	backend port.MaterialStore
}

// NewMaterialService creates the material service.
func NewMaterialService(backend port.MaterialStore, states *state.Registry[domain.Material], metrics *observability.Metrics, logger *zap.Logger) *MaterialService {
	return &MaterialService{
		ResourceService: NewResourceService[domain.Material, domain.MaterialRequest]("material", states, metrics, logger),
		backend:         backend,
	}
}

// AdjustStock patches the stock by a signed delta and merges the backend's
// copy into the scope's list. A delta that would drive stock negative is
// rejected locally.
func (s *MaterialService) AdjustStock(ctx context.Context, scope, id string, adj domain.StockAdjustment) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "MaterialService.AdjustStock")
	defer span.End()

	if err := s.validate.Struct(adj); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return nil, &domain.ErrValidation{Field: first.Field(), Message: "failed on '" + first.Tag() + "'"}
		}
		return nil, &domain.ErrValidation{Field: "request", Message: err.Error()}
	}

	store := s.states.For(scope)
	for _, m := range store.Items() {
		if m.ID == id && m.StockQuantity+adj.Delta < 0 {
			return nil, &domain.ErrPrecondition{Message: "stock cannot go negative"}
		}
	}

	updated, err := s.backend.AdjustStock(ctx, id, adj)
	if err != nil {
		s.metrics.IncrCoreAPIError("material")
		return nil, err
	}
	store.Merge(*updated)
	s.logger.Info("stock adjusted",
		zap.String("material_id", id),
		zap.Float64("delta", adj.Delta),
	)
	return updated, nil
}

// LowStock fetches the company's materials and returns those under their
// minimum. It always asks the backend with the company filter rather than
// reading whatever a previous request left in the store.
func (s *MaterialService) LowStock(ctx context.Context, scope, companyID string) ([]domain.Material, error) {
	ctx, span := tracer.Start(ctx, "MaterialService.LowStock")
	defer span.End()

	store := s.states.For(scope)
	err := store.Fetch(ctx, domain.PageRequest{Page: 1, PageSize: lowStockPageSize},
		map[string]string{"companyId": companyID})
	if err != nil {
		s.metrics.IncrCoreAPIError("material")
		return nil, err
	}
	return Filter(store.Items(), func(m domain.Material) bool { return m.BelowMinimum() }), nil
}
