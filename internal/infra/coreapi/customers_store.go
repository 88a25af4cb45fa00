package coreapi

import "github.com/noahops/console-bfa-go/internal/domain"

// CustomersStore talks to /Customer. Implements port.CustomerStore.
type CustomersStore struct {
	*resource[domain.Customer]
}

// NewCustomersStore creates the customers store.
func NewCustomersStore(c *Client) *CustomersStore {
	return &CustomersStore{resource: newResource[domain.Customer](c, "/Customer", "customer")}
}
