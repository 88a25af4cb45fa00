package domain

import "strconv"

// MaterialStatus mirrors the backend's integer material state.
type MaterialStatus int

const (
	MaterialInactive MaterialStatus = 0
	MaterialActive   MaterialStatus = 1
)

func (s MaterialStatus) String() string {
	switch s {
	case MaterialInactive:
		return "Inactive"
	case MaterialActive:
		return "Active"
	}
	return strconv.Itoa(int(s))
}

// Material is a consumable tracked per company (cleaning supplies etc.).
type Material struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Unit          string         `json:"unit"`
	StockQuantity float64        `json:"stockQuantity"`
	MinimumStock  float64        `json:"minimumStock"`
	CompanyID     string         `json:"companyId"`
	Status        MaterialStatus `json:"status"`
}

// BelowMinimum reports whether the material needs restocking.
func (m Material) BelowMinimum() bool { return m.StockQuantity < m.MinimumStock }

// MaterialRequest is the create/edit form payload for a material.
type MaterialRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit" validate:"required"`
	MinimumStock float64 `json:"minimumStock" validate:"gte=0"`
}

// StockAdjustment patches a material's stock by a signed delta.
type StockAdjustment struct {
	Delta  float64 `json:"delta" validate:"required"`
	Reason string  `json:"reason,omitempty"`
}
