package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"focus-backend/internal/models"
)

const (
	defaultTargetMinutesWeek = 120
	maxTargetMinutesWeek     = 7 * 24 * 60
)

type GoalStore interface {
	Create(ctx context.Context, g *models.Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Goal, error)
	Update(ctx context.Context, g *models.Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GoalService struct {
	goals GoalStore
}

func NewGoalService(goals GoalStore) *GoalService {
	return &GoalService{goals: goals}
}

func (s *GoalService) List(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, req models.GoalRequest) (*models.Goal, error) {
	g := &models.Goal{
		UserID:            userID,
		TargetMinutesWeek: defaultTargetMinutesWeek,
		IsActive:          true,
	}
	if err := applyGoalRequest(g, req, true); err != nil {
		return nil, err
	}
	if err := s.goals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Update applies the fields present in req. Title may be omitted.
func (s *GoalService) Update(ctx context.Context, userID, goalID uuid.UUID, req models.GoalRequest) (*models.Goal, error) {
	g, err := s.owned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if err := applyGoalRequest(g, req, false); err != nil {
		return nil, err
	}
	if err := s.goals.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, goalID); err != nil {
		return err
	}
	return s.goals.Delete(ctx, goalID)
}

// owned hides other users' goals behind the same error as missing ones.
func (s *GoalService) owned(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, error) {
	g, err := s.goals.GetByID(ctx, goalID)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && g.UserID != userID) {
		return nil, &NotFoundError{Message: "Goal not found"}
	}
	return g, err
}

func applyGoalRequest(g *models.Goal, req models.GoalRequest, requireTitle bool) error {
	fields := make(map[string]string)

	title := strings.TrimSpace(req.Title)
	switch {
	case title == "" && requireTitle:
		fields["title"] = "Title is required"
	case len(title) > 200:
		fields["title"] = "Title must be at most 200 characters"
	case title != "":
		g.Title = title
	}

	if req.Description != nil {
		d := strings.TrimSpace(*req.Description)
		if d == "" {
			g.Description = nil
		} else {
			g.Description = &d
		}
	}

	if req.TargetMinutesWeek != nil {
		m := *req.TargetMinutesWeek
		if m < 1 || m > maxTargetMinutesWeek {
			fields["target_minutes_week"] = "Target must be between 1 and 10080 minutes"
		} else {
			g.TargetMinutesWeek = m
		}
	}

	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
