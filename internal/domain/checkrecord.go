package domain

import "time"

// Check record statuses.
const (
	CheckOpen   = "CheckedIn"
	CheckClosed = "CheckedOut"
)

// GeoPoint is the position captured by the professional's device at
// check-in/check-out time.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}

// CheckRecord is one check-in/check-out pair for an appointment. TeamID and
// CheckOutTime are nullable: solo professionals have no team, and an open
// record has no check-out yet.
type CheckRecord struct {
	ID             string     `json:"id"`
	ProfessionalID string     `json:"professionalId"`
	CustomerID     string     `json:"customerId"`
	AppointmentID  string     `json:"appointmentId"`
	TeamID         *string    `json:"teamId,omitempty"`
	CheckInTime    time.Time  `json:"checkInTime"`
	CheckOutTime   *time.Time `json:"checkOutTime,omitempty"`
	Status         string     `json:"status"`
	ServiceType    string     `json:"serviceType"`
	Notes          string     `json:"notes,omitempty"`
	Location       *GeoPoint  `json:"location,omitempty"`
}

// Open reports whether the record is still waiting for a check-out.
func (c CheckRecord) Open() bool { return c.CheckOutTime == nil }

// CheckInRequest is the professional portal's check-in payload.
type CheckInRequest struct {
	AppointmentID string    `json:"appointmentId" validate:"required"`
	CustomerID    string    `json:"customerId" validate:"required"`
	ServiceType   string    `json:"serviceType"`
	Notes         string    `json:"notes,omitempty"`
	Location      *GeoPoint `json:"location,omitempty"`
}

// CheckOutRequest closes an open check record.
type CheckOutRequest struct {
	RecordID string    `json:"recordId" validate:"required"`
	Notes    string    `json:"notes,omitempty"`
	Location *GeoPoint `json:"location,omitempty"`
}
