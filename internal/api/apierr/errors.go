package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/sequencegame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeInvalidMove     = "INVALID_MOVE"
	CodeIllegalState    = "ILLEGAL_STATE"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotYourTurn     = "NOT_YOUR_TURN"
	CodeCardNotDead     = "CARD_NOT_DEAD"
	CodeGameOver        = "GAME_OVER"
	CodePlayerNotFound  = "PLAYER_NOT_FOUND"
	CodeMatchNotFound   = "MATCH_NOT_FOUND"
	CodeSummaryNotFound = "SUMMARY_NOT_FOUND"
	CodeTallyNotFound   = "TALLY_NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Rule violations carry
// their own message so a player can see why a move was refused.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Lookups
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSummaryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSummaryNotFound, "Game summary not found"}}
	case errors.Is(err, model.ErrTallyNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTallyNotFound, "No results for this series"}}

	// Specific rule errors
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrCardNotDead):
		return &httpError{http.StatusConflict, APIError{CodeCardNotDead, err.Error()}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is already over"}}

	// Error kinds
	case errors.Is(err, model.ErrInvalidArgument):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidArgument, err.Error()}}
	case errors.Is(err, model.ErrInvalidMove):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidMove, err.Error()}}
	case errors.Is(err, model.ErrIllegalState):
		return &httpError{http.StatusConflict, APIError{CodeIllegalState, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an error for requests that do not say which
// player is acting
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Player identification required"}}
}

// NewForbiddenError creates an error for reading another seat's private state
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
