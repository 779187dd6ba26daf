package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/sequencegame/internal/api/apierr"
	"github.com/mcoot/sequencegame/internal/model"
)

// PlayerHeader names the seat a request acts for. Seats are not
// authenticated; the header only says who is acting.
const PlayerHeader = "X-Player-ID"

type contextKey string

const playerContextKey contextKey = "player"

// Identity requires every request to name its player
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := extractPlayer(r)
			if id == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			ctx := context.WithValue(r.Context(), playerContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalIdentity records the player if one is named
func OptionalIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := extractPlayer(r); id != "" {
				r = r.WithContext(context.WithValue(r.Context(), playerContextKey, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractPlayer reads the header, falling back to a query parameter for
// EventSource clients that cannot set headers
func extractPlayer(r *http.Request) model.PlayerID {
	if id := strings.TrimSpace(r.Header.Get(PlayerHeader)); id != "" {
		return model.PlayerID(id)
	}
	return model.PlayerID(strings.TrimSpace(r.URL.Query().Get("player")))
}

// GetPlayer returns the acting player, or empty if none was named
func GetPlayer(ctx context.Context) model.PlayerID {
	id, _ := ctx.Value(playerContextKey).(model.PlayerID)
	return id
}

// MustGetPlayer returns the acting player or panics
func MustGetPlayer(ctx context.Context) model.PlayerID {
	id := GetPlayer(ctx)
	if id == "" {
		panic("no player in context - identity middleware not applied?")
	}
	return id
}
