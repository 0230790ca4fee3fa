package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"ticketboard/internal/repository"
	"ticketboard/internal/service"
	"ticketboard/internal/utils"
)

// fail maps domain sentinels onto HTTP statuses. Anything else is logged
// and reported as a bare 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, repository.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrConflict):
		utils.Error(w, http.StatusConflict, "username already taken")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		utils.Error(w, http.StatusInternalServerError, "internal error")
	}
}
