package api

import (
	"context"
	"net/http"

	"ticketboard/internal/models"
	"ticketboard/internal/session"
)

type Auth struct {
	c    Doer
	sess *session.Session
}

// Login stores the returned token in the session on success.
func (s *Auth) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	return s.authenticate(ctx, "/auth/login", creds)
}

// Register stores the returned token in the session on success.
func (s *Auth) Register(ctx context.Context, reg models.Registration) (*models.AuthResult, error) {
	return s.authenticate(ctx, "/auth/register", reg)
}

func (s *Auth) authenticate(ctx context.Context, path string, body any) (*models.AuthResult, error) {
	var out models.AuthResult
	if err := s.c.Do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	if err := s.sess.Set(out.Token, &out.User); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify resolves the session token to its user.
func (s *Auth) Verify(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := s.c.Do(ctx, http.MethodGet, "/auth/verify", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout forgets the local token without calling the server.
func (s *Auth) Logout() error {
	return s.sess.Clear()
}
