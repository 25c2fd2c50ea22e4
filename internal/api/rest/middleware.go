package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/security"
)

type contextKey string

const actorContextKey contextKey = "actor"

// authenticate validates the bearer token and stores the actor on the
// request context.
func authenticate(tokens *security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}
			actor, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
				return
			}
			ctx := context.WithValue(r.Context(), actorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireOperator rejects callers that are not admins or managers.
func requireOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFrom(r)
		if err != nil || !actor.IsOperator() {
			writeError(w, fmt.Errorf("operator role required: %w", domain.ErrForbidden))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func actorFrom(r *http.Request) (domain.Actor, error) {
	actor, ok := r.Context().Value(actorContextKey).(domain.Actor)
	if !ok {
		return domain.Actor{}, fmt.Errorf("no authenticated actor: %w", domain.ErrForbidden)
	}
	return actor, nil
}
