package coreapi

import "github.com/noahops/console-bfa-go/internal/domain"

// PlansStore talks to /Plans. Implements port.PlanStore.
type PlansStore struct {
	*resource[domain.Plan]
}

// NewPlansStore creates the plans store.
func NewPlansStore(c *Client) *PlansStore {
	return &PlansStore{resource: newResource[domain.Plan](c, "/Plans", "plan")}
}
