package api

import (
	"context"
	"net/http"
)

type Health struct{ c Doer }

// Backend probes API liveness.
func (s *Health) Backend(ctx context.Context) error {
	return s.c.Do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Database probes the API's storage.
func (s *Health) Database(ctx context.Context) error {
	return s.c.Do(ctx, http.MethodGet, "/health/db", nil, nil)
}
