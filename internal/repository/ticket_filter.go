package repository

import (
	"strings"

	"ticketboard/internal/models"
)

// TicketFilter narrows a ticket listing. Zero fields match everything.
type TicketFilter struct {
	Q        string // case-insensitive match on title or description
	Status   models.Status
	Priority models.Priority
}

// Match applies the filter in memory.
func (f TicketFilter) Match(t models.Ticket) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Q)); q != "" {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q)
	}
	return true
}
