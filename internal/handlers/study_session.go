package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"focus-backend/internal/middleware"
	"focus-backend/internal/models"
)

type SessionAPI interface {
	CompleteSession(ctx context.Context, userID uuid.UUID, req models.CompleteSessionRequest) (*models.SessionCompletion, error)
	WeeklyStats(ctx context.Context, userID uuid.UUID) (*models.WeeklyStats, error)
}

type StudySessionHandler struct {
	sessions SessionAPI
}

func NewStudySessionHandler(sessions SessionAPI) *StudySessionHandler {
	return &StudySessionHandler{sessions: sessions}
}

func (h *StudySessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req models.CompleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	res, err := h.sessions.CompleteSession(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *StudySessionHandler) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sessions.WeeklyStats(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
