package middleware

import (
	"context"
	"net/http"
	"strings"

	"ticketboard/internal/utils"

	"github.com/rs/zerolog"
)

// WithAuth resolves an Authorization: Bearer token into request context.
// Requests without a valid token pass through anonymous; RequireAuth decides.
func WithAuth(log zerolog.Logger, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := BearerToken(r)
			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := utils.ParseJWT(secret, tok)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected bearer token")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), claims.UserID, claims.Username)))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// UserID returns the authenticated user id, or "".
func UserID(ctx context.Context) string {
	uid, _, _ := utils.Identity(ctx)
	return uid
}
