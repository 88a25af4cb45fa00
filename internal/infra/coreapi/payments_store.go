package coreapi

import (
	"context"
	"fmt"

	"github.com/noahops/console-bfa-go/internal/domain"
)

// PaymentsStore talks to /Payments. Implements port.PaymentStore.
type PaymentsStore struct {
	*resource[domain.Payment]
}

// NewPaymentsStore creates the payments store.
func NewPaymentsStore(c *Client) *PaymentsStore {
	return &PaymentsStore{resource: newResource[domain.Payment](c, "/Payments", "payment")}
}

// UpdateStatus requests a status transition. The backend decides the outcome;
// the returned payment is whatever state it settled on.
func (s *PaymentsStore) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "CoreAPI.UpdatePaymentStatus")
	defer span.End()

	body, err := s.c.patch(ctx, fmt.Sprintf("/Payments/%s/status", id), domain.UpdatePaymentStatusRequest{Status: status})
	if err != nil {
		return nil, wrapErr(err, s.service, s.name, id)
	}
	return decodeOne[domain.Payment](body, s.name)
}
