package domain

import (
	"fmt"
	"strconv"
)

// PlanStatus mirrors the backend's integer plan state.
type PlanStatus int

const (
	PlanInactive PlanStatus = 0
	PlanActive   PlanStatus = 1
)

func (s PlanStatus) String() string {
	switch s {
	case PlanInactive:
		return "Inactive"
	case PlanActive:
		return "Active"
	}
	return strconv.Itoa(int(s))
}

// Plan is a subscription plan offered to companies. Subscriptions is only
// ever used for its length; the backend denormalizes the rest.
type Plan struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	DurationDays  int        `json:"duration"`
	Status        PlanStatus `json:"status"`
	Features      []string   `json:"features"`
	Subscriptions []string   `json:"subscriptions,omitempty"`
}

// SubscriptionCount returns how many companies subscribe to the plan.
func (p Plan) SubscriptionCount() int { return len(p.Subscriptions) }

// DurationLabel renders a plan duration in days as the portal label.
func DurationLabel(days int) string {
	switch days {
	case 30:
		return "Monthly"
	case 365:
		return "Annual"
	}
	return fmt.Sprintf("%d days", days)
}

// DurationLabel returns the display label for the plan's billing period.
func (p Plan) DurationLabel() string { return DurationLabel(p.DurationDays) }

// PlanRequest is the create/edit form payload for a plan.
type PlanRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"gte=0"`
	DurationDays int      `json:"duration" validate:"gt=0"`
	Features     []string `json:"features"`
}
