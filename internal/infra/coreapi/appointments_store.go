package coreapi

import "github.com/noahops/console-bfa-go/internal/domain"

// AppointmentsStore talks to /Appointment. Implements port.AppointmentStore.
type AppointmentsStore struct {
	*resource[domain.Appointment]
}

// NewAppointmentsStore creates the appointments store.
func NewAppointmentsStore(c *Client) *AppointmentsStore {
	return &AppointmentsStore{resource: newResource[domain.Appointment](c, "/Appointment", "appointment")}
}
