package domain

import "strconv"

// TeamStatus mirrors the backend's integer team state.
type TeamStatus int

const (
	TeamInactive TeamStatus = 0
	TeamActive   TeamStatus = 1
)

func (s TeamStatus) String() string {
	switch s {
	case TeamInactive:
		return "Inactive"
	case TeamActive:
		return "Active"
	}
	return strconv.Itoa(int(s))
}

// Team is a company's service crew.
type Team struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Region            string     `json:"region"`
	Status            TeamStatus `json:"status"`
	Rating            float64    `json:"rating"`
	CompletedServices int        `json:"completedServices"`
}

// TeamRequest is the create/edit form payload for a team.
type TeamRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Region      string `json:"region" validate:"required"`
}
