package repository

import (
	"context"

	"github.com/google/uuid"

	"focus-backend/internal/models"
)

type GoalRepo struct {
	db DBTX
}

func NewGoalRepo(db DBTX) *GoalRepo {
	return &GoalRepo{db: db}
}

func (r *GoalRepo) Create(ctx context.Context, g *models.Goal) error {
	g.ID = uuid.New()
	return r.db.QueryRow(ctx, `
		INSERT INTO goals (id, user_id, title, description, target_minutes_week, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, g.ID, g.UserID, g.Title, g.Description, g.TargetMinutesWeek, g.IsActive).Scan(&g.CreatedAt)
}

func (r *GoalRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error) {
	g := &models.Goal{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, title, description, target_minutes_week, is_active, created_at
		FROM goals WHERE id = $1
	`, id).Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.TargetMinutesWeek, &g.IsActive, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GoalRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, description, target_minutes_week, is_active, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]models.Goal, 0)
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.TargetMinutesWeek, &g.IsActive, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *GoalRepo) Update(ctx context.Context, g *models.Goal) error {
	_, err := r.db.Exec(ctx, `
		UPDATE goals
		SET title = $1, description = $2, target_minutes_week = $3, is_active = $4
		WHERE id = $5
	`, g.Title, g.Description, g.TargetMinutesWeek, g.IsActive, g.ID)
	return err
}

func (r *GoalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM goals WHERE id = $1", id)
	return err
}
