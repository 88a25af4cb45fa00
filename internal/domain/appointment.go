package domain

import "time"

// Appointment statuses are strings on the wire, matching the calendar view.
const (
	AppointmentScheduled  = "Scheduled"
	AppointmentInProgress = "InProgress"
	AppointmentCompleted  = "Completed"
	AppointmentCancelled  = "Cancelled"
)

// Appointment is a scheduled service visit.
type Appointment struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Customer string    `json:"customer"`
	Address  string    `json:"address"`
	Team     string    `json:"team"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
	Type     string    `json:"type"`
	Notes    string    `json:"notes,omitempty"`
}

// AppointmentRequest is the create/edit form payload for an appointment.
type AppointmentRequest struct {
	Title    string    `json:"title" validate:"required"`
	Customer string    `json:"customer" validate:"required"`
	Address  string    `json:"address"`
	Team     string    `json:"team"`
	Start    time.Time `json:"start" validate:"required"`
	End      time.Time `json:"end" validate:"required,gtfield=Start"`
	Type     string    `json:"type"`
	Notes    string    `json:"notes,omitempty"`
}
