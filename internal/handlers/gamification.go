package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"focus-backend/internal/middleware"
	"focus-backend/internal/models"
	"focus-backend/internal/services"
)

type GamificationAPI interface {
	Spin(ctx context.Context, userID uuid.UUID) (*models.SpinResult, error)
	Buy(ctx context.Context, userID uuid.UUID, req models.PurchaseRequest) (*models.PurchaseResult, error)
	Inventory(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error)
	Catalog() services.CatalogView
}

type GamificationHandler struct {
	game GamificationAPI
}

func NewGamificationHandler(game GamificationAPI) *GamificationHandler {
	return &GamificationHandler{game: game}
}

func (h *GamificationHandler) Spin(w http.ResponseWriter, r *http.Request) {
	res, err := h.game.Spin(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *GamificationHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	res, err := h.game.Buy(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *GamificationHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.game.Inventory(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []models.InventoryItem{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *GamificationHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.game.Catalog())
}
