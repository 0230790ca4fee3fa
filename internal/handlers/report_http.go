package handlers

import (
	"net/http"

	"ticketboard/internal/models"
	"ticketboard/internal/repository"
	"ticketboard/internal/utils"
)

type ReportsHTTP struct {
	repo repository.TicketRepository
}

func NewReportsHTTP(r repository.TicketRepository) *ReportsHTTP { return &ReportsHTTP{repo: r} }

// GET /reports/summary
func (h *ReportsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.repo.List(r.Context(), repository.TicketFilter{})
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, Summarize(items))
	}
}

func Summarize(items []models.Ticket) models.TicketSummary {
	var s models.TicketSummary
	for _, t := range items {
		switch t.Status {
		case models.StatusOpen:
			s.Open++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusClosed:
			s.Closed++
		}
		if t.Status != models.StatusClosed && t.Priority == models.PriorityHigh {
			s.HighOpen++
		}
	}
	return s
}
