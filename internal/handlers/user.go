package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"focus-backend/internal/middleware"
	"focus-backend/internal/models"
)

type ProfileAPI interface {
	Onboarding(ctx context.Context, userID uuid.UUID, req models.OnboardingRequest) (*models.Profile, bool, error)
	MyProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	CheckWeeklyReview(ctx context.Context, userID uuid.UUID) (bool, error)
	UpdatePlan(ctx context.Context, userID uuid.UUID, req models.PlanUpdateRequest) error
}

type UserHandler struct {
	profiles ProfileAPI
}

func NewUserHandler(profiles ProfileAPI) *UserHandler {
	return &UserHandler{profiles: profiles}
}

func (h *UserHandler) Onboarding(w http.ResponseWriter, r *http.Request) {
	var req models.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	profile, created, err := h.profiles.Onboarding(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	status, message := http.StatusOK, "Profile updated"
	if created {
		status, message = http.StatusCreated, "Profile created"
	}
	writeJSON(w, status, map[string]interface{}{
		"message":   message,
		"archetype": profile.Archetype,
		"profile":   profile,
	})
}

// MyProfile answers 404 for users who still have to take the onboarding quiz.
func (h *UserHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.MyProfile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) CheckWeeklyReview(w http.ResponseWriter, r *http.Request) {
	due, err := h.profiles.CheckWeeklyReview(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"due": due})
}

func (h *UserHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.PlanUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.profiles.UpdatePlan(r.Context(), middleware.GetUserID(r.Context()), req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Plan updated"})
}
