package api

import (
	"context"
	"net/http"
	"net/url"

	"ticketboard/internal/models"
)

type Tickets struct{ c Doer }

func (s *Tickets) List(ctx context.Context) ([]models.Ticket, error) {
	var out []models.Ticket
	if err := s.c.Do(ctx, http.MethodGet, "/tickets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Tickets) Get(ctx context.Context, id string) (*models.Ticket, error) {
	var out models.Ticket
	if err := s.c.Do(ctx, http.MethodGet, "/tickets/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Tickets) Create(ctx context.Context, in models.TicketInput) (*models.Ticket, error) {
	var out models.Ticket
	if err := s.c.Do(ctx, http.MethodPost, "/tickets", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Tickets) Update(ctx context.Context, id string, patch models.TicketPatch) (*models.Ticket, error) {
	var out models.Ticket
	if err := s.c.Do(ctx, http.MethodPut, "/tickets/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Tickets) Delete(ctx context.Context, id string) error {
	return s.c.Do(ctx, http.MethodDelete, "/tickets/"+url.PathEscape(id), nil, nil)
}

func (s *Tickets) Search(ctx context.Context, query string) ([]models.Ticket, error) {
	var out []models.Ticket
	if err := s.c.Do(ctx, http.MethodGet, "/tickets/search?q="+url.QueryEscape(query), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Tickets) Summary(ctx context.Context) (*models.TicketSummary, error) {
	var out models.TicketSummary
	if err := s.c.Do(ctx, http.MethodGet, "/reports/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
