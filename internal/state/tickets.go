package state

import (
	"context"
	"slices"
	"strings"
	"sync"

	"ticketboard/internal/client"
	"ticketboard/internal/models"
)

// TicketService is the slice of api.Tickets the list container calls.
type TicketService interface {
	List(ctx context.Context) ([]models.Ticket, error)
	Create(ctx context.Context, in models.TicketInput) (*models.Ticket, error)
	Update(ctx context.Context, id string, patch models.TicketPatch) (*models.Ticket, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]models.Ticket, error)
}

// TicketsView is a point-in-time copy of the list container.
type TicketsView struct {
	Tickets []models.Ticket
	Loading bool
	Error   string
}

// Tickets caches the last fetched list. Other clients' edits are not
// reconciled; the next Fetch simply overwrites the cache.
type Tickets struct {
	svc     TicketService
	onError func(error)

	mu      sync.Mutex
	tickets []models.Ticket
	loading bool
	err     string
}

// NewTickets wires the container to svc. onError, when non-nil, sees
// every raw failure so a session manager can react to 401s.
func NewTickets(svc TicketService, onError func(error)) *Tickets {
	return &Tickets{svc: svc, onError: onError}
}

func (s *Tickets) Snapshot() TicketsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TicketsView{Tickets: slices.Clone(s.tickets), Loading: s.loading, Error: s.err}
}

func (s *Tickets) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// finish records the outcome; on success apply runs under the lock.
func (s *Tickets) finish(err error, apply func()) bool {
	if err != nil && s.onError != nil {
		s.onError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = client.Message(err)
		return false
	}
	if apply != nil {
		apply()
	}
	return true
}

// Fetch replaces the cached list with the server's.
func (s *Tickets) Fetch(ctx context.Context) bool {
	s.begin()
	list, err := s.svc.List(ctx)
	return s.finish(err, func() { s.tickets = list })
}

// Search replaces the cached list with the matches for query.
func (s *Tickets) Search(ctx context.Context, query string) bool {
	if strings.TrimSpace(query) == "" {
		return s.Fetch(ctx)
	}
	s.begin()
	list, err := s.svc.Search(ctx, query)
	return s.finish(err, func() { s.tickets = list })
}

// Create prepends the server's record without re-fetching.
func (s *Tickets) Create(ctx context.Context, in models.TicketInput) (*models.Ticket, bool) {
	if strings.TrimSpace(in.Title) == "" {
		s.mu.Lock()
		s.err = "title is required"
		s.mu.Unlock()
		return nil, false
	}
	s.begin()
	t, err := s.svc.Create(ctx, in)
	ok := s.finish(err, func() {
		s.tickets = append([]models.Ticket{*t}, s.tickets...)
	})
	return t, ok
}

// Update swaps in the server's version of the record with id.
func (s *Tickets) Update(ctx context.Context, id string, patch models.TicketPatch) (*models.Ticket, bool) {
	s.begin()
	t, err := s.svc.Update(ctx, id, patch)
	ok := s.finish(err, func() {
		for i := range s.tickets {
			if s.tickets[i].ID == id {
				s.tickets[i] = *t
			}
		}
	})
	return t, ok
}

// Delete drops the record with id from the cache once the server agrees.
func (s *Tickets) Delete(ctx context.Context, id string) bool {
	s.begin()
	err := s.svc.Delete(ctx, id)
	return s.finish(err, func() {
		s.tickets = slices.DeleteFunc(s.tickets, func(t models.Ticket) bool { return t.ID == id })
	})
}

// ClearError dismisses the current message.
func (s *Tickets) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// Reset empties the cache, e.g. after logout.
func (s *Tickets) Reset() {
	s.mu.Lock()
	s.tickets, s.err, s.loading = nil, "", false
	s.mu.Unlock()
}
