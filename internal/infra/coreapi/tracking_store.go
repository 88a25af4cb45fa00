package coreapi

import "github.com/noahops/console-bfa-go/internal/domain"

// TrackingStore talks to /GpsTracking. Implements port.TrackingStore.
// Position reports are ingested elsewhere; the console only reads them.
type TrackingStore struct {
	*resource[domain.TrackingRecord]
}

// NewTrackingStore creates the GPS tracking store.
func NewTrackingStore(c *Client) *TrackingStore {
	return &TrackingStore{resource: newResource[domain.TrackingRecord](c, "/GpsTracking", "tracking")}
}
