package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticketboard/internal/models"
	"ticketboard/internal/repository"
)

// TicketRepo keeps tickets in process. Lists are newest first.
type TicketRepo struct {
	mu      sync.RWMutex
	tickets map[string]models.Ticket
	seq     map[string]uint64
	next    uint64
}

func NewTicketRepo() *TicketRepo {
	return &TicketRepo{tickets: map[string]models.Ticket{}, seq: map[string]uint64{}}
}

func (r *TicketRepo) List(_ context.Context, f repository.TicketFilter) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	// insertion sequence breaks ties between equal timestamps
	sort.Slice(out, func(i, j int) bool { return r.seq[out[i].ID] > r.seq[out[j].ID] })
	return out, nil
}

func (r *TicketRepo) Get(_ context.Context, id string) (*models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TicketRepo) Create(_ context.Context, t *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	t.ID = uuid.NewString()
	t.CreatedAt, t.UpdatedAt = now, now
	r.next++
	r.seq[t.ID] = r.next
	r.tickets[t.ID] = *t
	return nil
}

func (r *TicketRepo) Update(_ context.Context, t *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.tickets[t.ID]
	if !ok {
		return repository.ErrNotFound
	}
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	r.tickets[t.ID] = *t
	return nil
}

func (r *TicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tickets, id)
	delete(r.seq, id)
	return nil
}

// Ping always succeeds: the store lives in process.
func (r *TicketRepo) Ping(context.Context) error { return nil }
