package coreapi

import "github.com/noahops/console-bfa-go/internal/domain"

// CheckRecordsStore talks to /CheckRecord. Implements port.CheckRecordStore.
type CheckRecordsStore struct {
	*resource[domain.CheckRecord]
}

// NewCheckRecordsStore creates the check-records store.
func NewCheckRecordsStore(c *Client) *CheckRecordsStore {
	return &CheckRecordsStore{resource: newResource[domain.CheckRecord](c, "/CheckRecord", "checkrecord")}
}
