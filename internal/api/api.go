// Package api groups REST calls by resource. Each method is exactly
// one request with its input passed through untouched; validation is
// the server's job.
package api

import (
	"context"

	"ticketboard/internal/client"
)

// Doer is the subset of *client.Client the services need.
type Doer interface {
	Do(ctx context.Context, method, path string, in, out any) error
}

var _ Doer = (*client.Client)(nil)

// Services bundles every resource service over one client.
type Services struct {
	Tickets *Tickets
	Auth    *Auth
	Users   *Users
	Health  *Health
}

func New(c *client.Client) *Services {
	return &Services{
		Tickets: &Tickets{c: c},
		Auth:    &Auth{c: c, sess: c.Session()},
		Users:   &Users{c: c},
		Health:  &Health{c: c},
	}
}
