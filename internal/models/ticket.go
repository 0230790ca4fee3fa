package models

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Priorities lists every priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusClosed     Status = "CLOSED"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusClosed}

type Ticket struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// TicketInput is the body of a create call.
type TicketInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
}

// TicketPatch is the body of an update call. Nil fields are left untouched.
type TicketPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}

// Empty reports whether the patch carries no fields.
func (p TicketPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.Status == nil
}

// Apply copies the set fields of p onto t.
func (p TicketPatch) Apply(t *Ticket) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

func normalizeEnum(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
}

// ParsePriority accepts any case, e.g. "high" or "High".
func ParsePriority(s string) (Priority, error) {
	p := Priority(normalizeEnum(s))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q", s)
}

// ParseStatus accepts any case and either separator, e.g. "in-progress".
func ParseStatus(s string) (Status, error) {
	st := Status(normalizeEnum(s))
	switch st {
	case StatusOpen, StatusInProgress, StatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// Next returns the status that follows s in the workflow, wrapping
// CLOSED back to OPEN.
func (s Status) Next() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusOpen
}

// TicketSummary counts tickets per status plus open high-priority ones.
type TicketSummary struct {
	Open       int `json:"open" yaml:"open"`
	InProgress int `json:"inProgress" yaml:"inProgress"`
	Closed     int `json:"closed" yaml:"closed"`
	HighOpen   int `json:"highOpen" yaml:"highOpen"`
}
