package handlers

import (
	"net/http"

	"ticketboard/internal/middleware"
	"ticketboard/internal/models"
	"ticketboard/internal/repository"
	"ticketboard/internal/service"
	"ticketboard/internal/utils"
)

type UserHTTP struct {
	users repository.UserRepository
	svc   *service.AuthService
}

func NewUserHTTP(users repository.UserRepository, svc *service.AuthService) *UserHTTP {
	return &UserHTTP{users: users, svc: svc}
}

// GET /users/me
func (h *UserHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := h.users.GetByID(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			fail(w, r, err)
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// PUT /users/me
func (h *UserHTTP) UpdateMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.ProfileUpdate
		if err := utils.Decode(r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.UpdateProfile(r.Context(), middleware.UserID(r.Context()), in)
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}
