package coreapi

import "github.com/noahops/console-bfa-go/internal/domain"

// ProfessionalsStore talks to /Professional, listing via /Professional/paged.
// Implements port.ProfessionalStore.
type ProfessionalsStore struct {
	*resource[domain.Professional]
}

// NewProfessionalsStore creates the professionals store.
func NewProfessionalsStore(c *Client) *ProfessionalsStore {
	return &ProfessionalsStore{resource: newPagedResource[domain.Professional](c, "/Professional", "/Professional/paged", "professional")}
}
