// Package testutil runs the real API router on in-memory storage for
// client-side tests.
package testutil

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"ticketboard/internal/config"
	"ticketboard/internal/repository/memory"
	"ticketboard/internal/router"
	"ticketboard/internal/utils"
)

const Secret = "test-secret"

// Backend is a live API server. Close is registered with t.Cleanup.
type Backend struct {
	*httptest.Server
	Tickets *memory.TicketRepo
	Users   *memory.UserRepo

	dbDown atomic.Bool
}

func (b *Backend) Ping(ctx context.Context) error {
	if b.dbDown.Load() {
		return errors.New("database offline")
	}
	return b.Tickets.Ping(ctx)
}

// SetDBDown makes /health/db report 503 while down is true.
func (b *Backend) SetDBDown(down bool) { b.dbDown.Store(down) }

func NewBackend(t testing.TB) *Backend {
	t.Helper()
	utils.HashCost = bcrypt.MinCost

	b := &Backend{Tickets: memory.NewTicketRepo(), Users: memory.NewUserRepo()}
	cfg := config.Config{
		Env:           "test",
		Origin:        "http://localhost:3000",
		SessionSecret: Secret,
		TokenTTL:      time.Hour,
		Storage:       "memory",
	}
	b.Server = httptest.NewServer(router.New(zerolog.Nop(), router.Deps{Tickets: b.Tickets, Users: b.Users, DB: b}, cfg))
	t.Cleanup(b.Close)
	return b
}
