package coreapi

import "github.com/noahops/console-bfa-go/internal/domain"

// TeamsStore talks to /Team, listing via /Team/paged. Implements
// port.TeamStore.
type TeamsStore struct {
	*resource[domain.Team]
}

// NewTeamsStore creates the teams store.
func NewTeamsStore(c *Client) *TeamsStore {
	return &TeamsStore{resource: newPagedResource[domain.Team](c, "/Team", "/Team/paged", "team")}
}
