package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"ticketboard/internal/middleware"
	"ticketboard/internal/models"
	"ticketboard/internal/repository"
	"ticketboard/internal/service"
)

var errDriver = errors.New(`ERROR: relation "tickets" does not exist (SQLSTATE 42P01)`)

// brokenTickets fails every call with a storage error.
type brokenTickets struct{}

func (brokenTickets) List(context.Context, repository.TicketFilter) ([]models.Ticket, error) {
	return nil, errDriver
}
func (brokenTickets) Get(context.Context, string) (*models.Ticket, error) { return nil, errDriver }
func (brokenTickets) Create(context.Context, *models.Ticket) error { return errDriver }
func (brokenTickets) Update(context.Context, *models.Ticket) error { return errDriver }
func (brokenTickets) Delete(context.Context, string) error { return errDriver }

func TestStorageErrorsStayServerSide(t *testing.T) {
	var logs bytes.Buffer
	h := middleware.RequestLogger(zerolog.New(&logs))(NewTicketHTTP(brokenTickets{}).List())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tickets", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
	assert.Contains(t, logs.String(), "SQLSTATE 42P01")
}

func TestFailMapsSentinels(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
		body   string
	}{
		{repository.ErrNotFound, http.StatusNotFound, `{"error":"not found"}`},
		{repository.ErrConflict, http.StatusConflict, `{"error":"username already taken"}`},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{errDriver, http.StatusInternalServerError, `{"error":"internal error"}`},
	} {
		w := httptest.NewRecorder()
		fail(w, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, w.Body.String())
	}
}
