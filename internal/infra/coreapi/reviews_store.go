package coreapi

import "github.com/noahops/console-bfa-go/internal/domain"

// ReviewsStore talks to /Review. Implements port.ReviewStore.
type ReviewsStore struct {
	*resource[domain.Review]
}

// NewReviewsStore creates the reviews store.
func NewReviewsStore(c *Client) *ReviewsStore {
	return &ReviewsStore{resource: newResource[domain.Review](c, "/Review", "review")}
}
