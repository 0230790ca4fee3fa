package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ticketboard/internal/models"
	"ticketboard/internal/repository"
	"ticketboard/internal/utils"
)

// TicketHTTP wires HTTP endpoints to the ticket repository.
type TicketHTTP struct {
	tickets repository.TicketRepository
}

func NewTicketHTTP(tickets repository.TicketRepository) *TicketHTTP {
	return &TicketHTTP{tickets: tickets}
}

// filterFrom reads q, status and priority from the query string.
func filterFrom(r *http.Request) (repository.TicketFilter, string) {
	qv := r.URL.Query()
	f := repository.TicketFilter{Q: utils.QueryTrim(qv, "q")}
	if s := utils.QueryTrim(qv, "status"); s != "" {
		st, err := models.ParseStatus(s)
		if err != nil {
			return f, err.Error()
		}
		f.Status = st
	}
	if p := utils.QueryTrim(qv, "priority"); p != "" {
		pr, err := models.ParsePriority(p)
		if err != nil {
			return f, err.Error()
		}
		f.Priority = pr
	}
	return f, ""
}

// GET /tickets?q=&status=&priority=
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, bad := filterFrom(r)
		if bad != "" {
			utils.Error(w, http.StatusBadRequest, bad)
			return
		}
		items, err := h.tickets.List(r.Context(), f)
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// GET /tickets/search?q=
func (h *TicketHTTP) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := utils.QueryTrim(r.URL.Query(), "q")
		if q == "" {
			utils.Error(w, http.StatusBadRequest, "q is required")
			return
		}
		items, err := h.tickets.List(r.Context(), repository.TicketFilter{Q: q})
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// GET /tickets/{id}
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.tickets.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			fail(w, r, err)
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /tickets
func (h *TicketHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := utils.Decode(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Title = strings.TrimSpace(in.Title)
		if in.Title == "" {
			utils.Error(w, http.StatusBadRequest, "title is required")
			return
		}

		t := &models.Ticket{
			Title:       in.Title,
			Description: strings.TrimSpace(in.Description),
			Priority:    models.PriorityMedium,
			Status:      models.StatusOpen,
		}
		if in.Priority != "" {
			p, err := models.ParsePriority(in.Priority)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			t.Priority = p
		}

		if err := h.tickets.Create(r.Context(), t); err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

// PUT /tickets/{id} with any subset of fields.
func (h *TicketHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
		Status      *string `json:"status"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := utils.Decode(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := h.tickets.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			fail(w, r, err)
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		var patch models.TicketPatch
		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				utils.Error(w, http.StatusBadRequest, "title is required")
				return
			}
			patch.Title = &title
		}
		if in.Description != nil {
			desc := strings.TrimSpace(*in.Description)
			patch.Description = &desc
		}
		if in.Priority != nil {
			p, err := models.ParsePriority(*in.Priority)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			patch.Priority = &p
		}
		if in.Status != nil {
			st, err := models.ParseStatus(*in.Status)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			patch.Status = &st
		}
		patch.Apply(t)

		if err := h.tickets.Update(r.Context(), t); err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// DELETE /tickets/{id}
func (h *TicketHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.tickets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
