package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/sequencegame/internal/api/handler"
	"github.com/mcoot/sequencegame/internal/api/middleware"
	"github.com/mcoot/sequencegame/internal/api/response"
	"github.com/mcoot/sequencegame/internal/api/sse"
	"github.com/mcoot/sequencegame/internal/services/board"
	"github.com/mcoot/sequencegame/internal/services/bot"
	"github.com/mcoot/sequencegame/internal/services/match"
	"github.com/mcoot/sequencegame/internal/services/results"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	MatchService   match.ServiceInterface
	ResultsService results.ServiceInterface
	BoardService   board.ServiceInterface
	BotService     bot.ServiceInterface
	HubManager     *sse.HubManager
	Storage        Pinger // Optional, checked by the health endpoint
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	matchHandler := handler.NewMatchHandler(cfg.MatchService, cfg.HubManager)
	resultsHandler := handler.NewResultsHandler(cfg.ResultsService)
	catalogHandler := handler.NewCatalogHandler(cfg.BoardService, cfg.BotService)

	// Create middleware
	identityMiddleware := middleware.Identity()
	optionalIdentityMiddleware := middleware.OptionalIdentity()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Match routes; seat actions need to know who is acting
	seat := func(h http.HandlerFunc) http.Handler { return identityMiddleware(h) }
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(optionalIdentityMiddleware)
	matches.HandleFunc("", matchHandler.Create).Methods(http.MethodPost)
	matches.HandleFunc("", matchHandler.List).Methods(http.MethodGet)
	matches.HandleFunc("/{id}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{id}", matchHandler.Delete).Methods(http.MethodDelete)
	matches.HandleFunc("/{id}/openings/{team}", matchHandler.Openings).Methods(http.MethodGet)
	matches.HandleFunc("/{id}/events", matchHandler.Events).Methods(http.MethodGet)
	matches.Handle("/{id}/hands/{player_id}", seat(matchHandler.Hand)).Methods(http.MethodGet)
	matches.Handle("/{id}/moves", seat(matchHandler.Move)).Methods(http.MethodPost)
	matches.Handle("/{id}/dead-card", seat(matchHandler.DeadCard)).Methods(http.MethodPost)

	// Results
	api.HandleFunc("/results", resultsHandler.ListSeries).Methods(http.MethodGet)
	api.HandleFunc("/results/{series}", resultsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/results/{series}", resultsHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/summaries/{id}", resultsHandler.GetSummary).Methods(http.MethodGet)

	api.HandleFunc("/catalog", catalogHandler.Get).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler(cfg.Storage)).Methods(http.MethodGet)

	return r
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}

func healthHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			response.JSON(w, http.StatusOK, HealthResponse{Status: "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			response.JSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Storage: "unreachable"})
			return
		}
		response.JSON(w, http.StatusOK, HealthResponse{Status: "ok", Storage: "ok"})
	}
}
