package domain

import "strconv"

// ProfessionalStatus mirrors the backend's integer professional state.
type ProfessionalStatus int

const (
	ProfessionalInactive ProfessionalStatus = 0
	ProfessionalActive   ProfessionalStatus = 1
)

func (s ProfessionalStatus) String() string {
	switch s {
	case ProfessionalInactive:
		return "Inactive"
	case ProfessionalActive:
		return "Active"
	}
	return strconv.Itoa(int(s))
}

// Professional is a field worker employed by a company.
type Professional struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone"`
	CompanyID string             `json:"companyId"`
	TeamID    string             `json:"teamId,omitempty"`
	Status    ProfessionalStatus `json:"status"`
	Rating    float64            `json:"rating"`
}

// ProfessionalRequest is the create/edit form payload for a professional.
type ProfessionalRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone"`
	TeamID string `json:"teamId,omitempty"`
}
