package handlers

import (
	"net/http"

	"ticketboard/internal/middleware"
	"ticketboard/internal/models"
	"ticketboard/internal/service"
	"ticketboard/internal/utils"
)

type AuthHTTP struct {
	svc *service.AuthService
}

func NewAuthHTTP(s *service.AuthService) *AuthHTTP {
	return &AuthHTTP{svc: s}
}

// POST /auth/register
func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.Registration
		if err := utils.Decode(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		res, err := h.svc.Register(r.Context(), in)
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusCreated, res)
	}
}

// POST /auth/login
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.Credentials
		if err := utils.Decode(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		res, err := h.svc.Login(r.Context(), in)
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, res)
	}
}

// GET /auth/verify
func (h *AuthHTTP) Verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := middleware.BearerToken(r)
		if tok == "" {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		u, err := h.svc.Verify(r.Context(), tok)
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// POST /auth/logout. Tokens are stateless, so there is nothing to revoke.
func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
