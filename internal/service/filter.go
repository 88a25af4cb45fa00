package service

import (
	"strings"

	"github.com/noahops/console-bfa-go/internal/domain"
)

// Predicate decides whether an entity stays in a filtered view.
type Predicate[T any] func(T) bool

// Filter returns the items matching every predicate, preserving input order.
// With no predicates (or only nil ones) the input comes back unchanged, so
// applying the same filter twice yields the same result.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, pred := range preds {
			if pred != nil && !pred(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// TextSearch matches when the query appears, case-insensitively, in any of
// the entity's searchable fields. An empty query matches everything.
func TextSearch[T any](query string, fields func(T) []string) Predicate[T] {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	return func(item T) bool {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), query) {
				return true
			}
		}
		return false
	}
}

// FilterTeams narrows a team list by free text (name, description, region)
// and an optional status.
func FilterTeams(items []domain.Team, query string, status *domain.TeamStatus) []domain.Team {
	var byStatus Predicate[domain.Team]
	if status != nil {
		byStatus = func(t domain.Team) bool { return t.Status == *status }
	}
	return Filter(items,
		TextSearch(query, func(t domain.Team) []string {
			return []string{t.Name, t.Description, t.Region}
		}),
		byStatus,
	)
}

// FilterPlans narrows a plan list by free text (name, description, features)
// and an optional status.
func FilterPlans(items []domain.Plan, query string, status *domain.PlanStatus) []domain.Plan {
	var byStatus Predicate[domain.Plan]
	if status != nil {
		byStatus = func(p domain.Plan) bool { return p.Status == *status }
	}
	return Filter(items,
		TextSearch(query, func(p domain.Plan) []string {
			fields := []string{p.Name, p.Description}
			return append(fields, p.Features...)
		}),
		byStatus,
	)
}

// FilterProfessionals narrows a professional list by free text (name, email)
// and an optional status.
func FilterProfessionals(items []domain.Professional, query string, status *domain.ProfessionalStatus) []domain.Professional {
	var byStatus Predicate[domain.Professional]
	if status != nil {
		byStatus = func(p domain.Professional) bool { return p.Status == *status }
	}
	return Filter(items,
		TextSearch(query, func(p domain.Professional) []string {
			return []string{p.Name, p.Email}
		}),
		byStatus,
	)
}

// FilterCheckRecords narrows a check record list by free text (service type,
// notes) and an optional status string (open/closed).
func FilterCheckRecords(items []domain.CheckRecord, query, status string) []domain.CheckRecord {
	var byStatus Predicate[domain.CheckRecord]
	if status != "" {
		byStatus = func(c domain.CheckRecord) bool { return c.Status == status }
	}
	return Filter(items,
		TextSearch(query, func(c domain.CheckRecord) []string {
			return []string{c.ServiceType, c.Notes}
		}),
		byStatus,
	)
}
