package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"focus-backend/internal/middleware"
	"focus-backend/internal/models"
)

type GoalAPI interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Goal, error)
	Create(ctx context.Context, userID uuid.UUID, req models.GoalRequest) (*models.Goal, error)
	Update(ctx context.Context, userID, goalID uuid.UUID, req models.GoalRequest) (*models.Goal, error)
	Delete(ctx context.Context, userID, goalID uuid.UUID) error
}

type GoalHandler struct {
	goals GoalAPI
}

func NewGoalHandler(goals GoalAPI) *GoalHandler {
	return &GoalHandler{goals: goals}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goals.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if goals == nil {
		goals = []models.Goal{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"goals": goals})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	goal, err := h.goals.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid goal ID", r))
		return
	}

	var req models.GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	goal, err := h.goals.Update(r.Context(), middleware.GetUserID(r.Context()), goalID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid goal ID", r))
		return
	}

	if err := h.goals.Delete(r.Context(), middleware.GetUserID(r.Context()), goalID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
