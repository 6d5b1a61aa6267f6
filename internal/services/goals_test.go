package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus-backend/internal/models"
)

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestGoalService_Lifecycle(t *testing.T) {
	svc := NewGoalService(memGoals{newMemStore()})
	ctx := context.Background()
	owner := uuid.New()

	g, err := svc.Create(ctx, owner, models.GoalRequest{Title: "  Pass calculus  "})
	require.NoError(t, err)
	assert.Equal(t, "Pass calculus", g.Title)
	assert.Equal(t, defaultTargetMinutesWeek, g.TargetMinutesWeek)
	assert.True(t, g.IsActive)

	updated, err := svc.Update(ctx, owner, g.ID, models.GoalRequest{
		TargetMinutesWeek: intPtr(300),
		IsActive:          boolPtr(false),
		Description:       strPtr("chapters 1-4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pass calculus", updated.Title)
	assert.Equal(t, 300, updated.TargetMinutesWeek)
	assert.False(t, updated.IsActive)
	require.NotNil(t, updated.Description)

	goals, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, goals, 1)

	require.NoError(t, svc.Delete(ctx, owner, g.ID))
	goals, _ = svc.List(ctx, owner)
	assert.Empty(t, goals)
}

func TestGoalService_OwnerOnly(t *testing.T) {
	svc := NewGoalService(memGoals{newMemStore()})
	ctx := context.Background()
	owner, other := uuid.New(), uuid.New()

	g, err := svc.Create(ctx, owner, models.GoalRequest{Title: "Read daily"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other, g.ID, models.GoalRequest{Title: "hijacked"})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	require.ErrorAs(t, svc.Delete(ctx, other, g.ID), &nf)
	require.ErrorAs(t, svc.Delete(ctx, owner, uuid.New()), &nf)
}

func TestGoalService_Validation(t *testing.T) {
	svc := NewGoalService(memGoals{newMemStore()})

	_, err := svc.Create(context.Background(), uuid.New(), models.GoalRequest{Title: " ", TargetMinutesWeek: intPtr(0)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "target_minutes_week")
}
