package coreapi

import "github.com/noahops/console-bfa-go/internal/domain"

// CompaniesStore talks to /Companies. Implements port.CompanyStore.
type CompaniesStore struct {
	*resource[domain.Company]
}

// NewCompaniesStore creates the companies store.
func NewCompaniesStore(c *Client) *CompaniesStore {
	return &CompaniesStore{resource: newResource[domain.Company](c, "/Companies", "company")}
}
