package domain

import "time"

// Customer is an end client of a company.
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CompanyID string `json:"companyId"`
	Status    string `json:"status"`
}

// CustomerRequest is the create/edit form payload for a customer.
type CustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Company is a tenant of the platform, visible from the admin portal.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Email     string    `json:"email"`
	PlanID    string    `json:"planId,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Review is customer feedback on a completed appointment.
type Review struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	TeamID        string    `json:"teamId,omitempty"`
	AppointmentID string    `json:"appointmentId"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
}
