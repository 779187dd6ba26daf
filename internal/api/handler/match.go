package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/sequencegame/internal/api/middleware"
	"github.com/mcoot/sequencegame/internal/api/request"
	"github.com/mcoot/sequencegame/internal/api/response"
	"github.com/mcoot/sequencegame/internal/api/sse"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/match"
)

// MatchHandler handles match endpoints
type MatchHandler struct {
	matches    match.ServiceInterface
	hubManager *sse.HubManager
}

// NewMatchHandler creates a new match handler. hubManager may be nil, in
// which case the event stream is unavailable.
func NewMatchHandler(matches match.ServiceInterface, hubManager *sse.HubManager) *MatchHandler {
	return &MatchHandler{
		matches:    matches,
		hubManager: hubManager,
	}
}

func matchID(r *http.Request) model.MatchID {
	return model.MatchID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	opts, err := req.ToOptions()
	if err != nil {
		WriteError(w, err)
		return
	}

	status, err := h.matches.Create(r.Context(), opts)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromStatus(status))
}

// List handles GET /api/v1/matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses := h.matches.List(r.Context())
	response.JSON(w, http.StatusOK, response.MatchListFromStatuses(statuses))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.matches.Get(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromStatus(status))
}

// Delete handles DELETE /api/v1/matches/{id}
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.matches.Remove(r.Context(), matchID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Hand handles GET /api/v1/matches/{id}/hands/{player_id}
// Only the seat itself may look at its cards.
func (h *MatchHandler) Hand(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	target := model.PlayerID(mux.Vars(r)["player_id"])
	if player != target {
		WriteError(w, NewForbiddenError("Cannot view another player's hand"))
		return
	}

	hand, err := h.matches.Hand(r.Context(), matchID(r), target)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HandFromModel(hand))
}

// Move handles POST /api/v1/matches/{id}/moves
func (h *MatchHandler) Move(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	status, err := h.matches.PlayMove(r.Context(), matchID(r), player, req.ToMove())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromStatus(status))
}

// DeadCard handles POST /api/v1/matches/{id}/dead-card
func (h *MatchHandler) DeadCard(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.DeadCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	status, err := h.matches.DeadCard(r.Context(), matchID(r), player, req.HandIndex)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromStatus(status))
}

// Openings handles GET /api/v1/matches/{id}/openings/{team}
func (h *MatchHandler) Openings(w http.ResponseWriter, r *http.Request) {
	team, err := model.ParseTeam(mux.Vars(r)["team"])
	if err != nil {
		WriteError(w, err)
		return
	}

	openings, err := h.matches.Openings(r.Context(), matchID(r), team)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OpeningsFromModel(team, openings))
}

// Events handles GET /api/v1/matches/{id}/events
func (h *MatchHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := matchID(r)
	if _, err := h.matches.Get(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	if h.hubManager == nil {
		WriteError(w, NewInvalidRequestError("Event stream not available"))
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, middleware.GetPlayer(r.Context()))
}
