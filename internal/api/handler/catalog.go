package handler

import (
	"net/http"

	"github.com/mcoot/sequencegame/internal/api/response"
	"github.com/mcoot/sequencegame/internal/services/board"
	"github.com/mcoot/sequencegame/internal/services/bot"
)

// CatalogHandler lists the layouts and bot strategies a match can use
type CatalogHandler struct {
	boards board.ServiceInterface
	bots   bot.ServiceInterface
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(boards board.ServiceInterface, bots bot.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{boards: boards, bots: bots}
}

// Get handles GET /api/v1/catalog
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.CatalogFromNames(h.boards.Layouts(), h.bots.Strategies()))
}
