package handlers

import (
	"context"
	"net/http"
	"time"

	"ticketboard/internal/repository"
	"ticketboard/internal/utils"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HealthDB reports 503 when the store does not answer a ping within two seconds.
func HealthDB(db repository.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			utils.Error(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
