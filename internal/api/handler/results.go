package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/sequencegame/internal/api/response"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/results"
)

// defaultRecentLimit bounds the summaries returned alongside a tally
const defaultRecentLimit = 20

// ResultsHandler handles result and tally endpoints
type ResultsHandler struct {
	results results.ServiceInterface
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(results results.ServiceInterface) *ResultsHandler {
	return &ResultsHandler{results: results}
}

// ListSeries handles GET /api/v1/results
func (h *ResultsHandler) ListSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.results.ListSeries(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if series == nil {
		series = []string{}
	}
	response.JSON(w, http.StatusOK, response.Series{Series: series})
}

// Get handles GET /api/v1/results/{series}?limit=N
// A series with no games yet returns an empty tally rather than 404.
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	series := mux.Vars(r)["series"]

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	tally, err := h.results.GetTally(r.Context(), series)
	if errors.Is(err, model.ErrTallyNotFound) {
		tally = model.NewTally(series)
	} else if err != nil {
		WriteError(w, err)
		return
	}

	var summaries []*model.GameSummary
	if limit > 0 {
		summaries, err = h.results.ListSummaries(r.Context(), series, limit)
		if err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, response.ResultsFromModel(tally, summaries))
}

// Delete handles DELETE /api/v1/results/{series}
func (h *ResultsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.results.DeleteSeries(r.Context(), mux.Vars(r)["series"]); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// GetSummary handles GET /api/v1/summaries/{id}
func (h *ResultsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.results.GetSummary(r.Context(), model.MatchID(mux.Vars(r)["id"]))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameSummaryFromModel(summary))
}
