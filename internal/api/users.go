package api

import (
	"context"
	"net/http"

	"ticketboard/internal/models"
)

type Users struct{ c Doer }

func (s *Users) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := s.c.Do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Users) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	var out models.User
	if err := s.c.Do(ctx, http.MethodPut, "/users/me", upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
