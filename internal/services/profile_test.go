package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus-backend/internal/models"
	"focus-backend/internal/repository"
)

func newProfileFixture() (*memStore, *stepClock, *ProfileService) {
	store := newMemStore()
	clock := &stepClock{t: time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)}
	return store, clock, NewProfileService(store, store, store, clock, nil)
}

func TestOnboarding_CreatesThenUpdates(t *testing.T) {
	store, clock, svc := newProfileFixture()
	ctx := context.Background()
	userID := store.addUser(0, clock.Now())

	_, err := svc.MyProfile(ctx, userID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	p, created, err := svc.Onboarding(ctx, userID, models.OnboardingRequest{Score: 12, Archetype: " b ", PreferredMinutes: 0})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "B", p.Archetype)
	assert.Equal(t, DefaultPreferredMinutes, p.PreferredMinutes)

	bio := "  night owl  "
	p, created, err = svc.Onboarding(ctx, userID, models.OnboardingRequest{Archetype: "C", PreferredMinutes: 40, Bio: &bio})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "C", p.Archetype)
	assert.Equal(t, 40, p.PreferredMinutes)
	require.NotNil(t, p.Bio)
	assert.Equal(t, "night owl", *p.Bio)

	got, err := svc.MyProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "C", got.Archetype)
	assert.Len(t, store.profiles, 1)
}

func TestOnboarding_Validation(t *testing.T) {
	store, clock, svc := newProfileFixture()
	userID := store.addUser(0, clock.Now())

	_, _, err := svc.Onboarding(context.Background(), userID, models.OnboardingRequest{Archetype: "D", PreferredMinutes: 200, Score: -1})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "archetype")
	assert.Contains(t, verr.Fields, "preferred_minutes")
	assert.Contains(t, verr.Fields, "score")
	assert.Equal(t, 0, store.txCalls)
}

func TestOnboarding_UnknownUser(t *testing.T) {
	_, _, svc := newProfileFixture()

	_, _, err := svc.Onboarding(context.Background(), uuid.New(), models.OnboardingRequest{Archetype: "A"})
	var uerr *UnauthorizedError
	require.ErrorAs(t, err, &uerr)
}

func TestCheckWeeklyReview(t *testing.T) {
	store, clock, svc := newProfileFixture()
	ctx := context.Background()

	fresh := store.addUser(0, clock.Now().Add(-2*24*time.Hour))
	due, err := svc.CheckWeeklyReview(ctx, fresh)
	require.NoError(t, err)
	assert.False(t, due, "grace period for new accounts")

	older := store.addUser(0, clock.Now().Add(-3*24*time.Hour))
	due, err = svc.CheckWeeklyReview(ctx, older)
	require.NoError(t, err)
	assert.True(t, due)

	_, err = svc.CheckWeeklyReview(ctx, uuid.New())
	var uerr *UnauthorizedError
	require.ErrorAs(t, err, &uerr)
}

func TestUpdatePlan_StampsReviewAndProfile(t *testing.T) {
	store, clock, svc := newProfileFixture()
	ctx := context.Background()
	userID := store.addUser(0, clock.Now().AddDate(0, 0, -30))

	// Without a profile only the review is recorded.
	require.NoError(t, svc.UpdatePlan(ctx, userID, models.PlanUpdateRequest{NewArchetype: "a", NewMinutes: 15}))
	u := store.user(userID)
	require.NotNil(t, u.LastWeeklyReview)
	assert.True(t, u.LastWeeklyReview.Equal(clock.Now()))
	assert.Empty(t, store.profiles)

	_, _, err := svc.Onboarding(ctx, userID, models.OnboardingRequest{Archetype: "B", PreferredMinutes: 25})
	require.NoError(t, err)

	clock.set(clock.Now().AddDate(0, 0, 7))
	due, err := svc.CheckWeeklyReview(ctx, userID)
	require.NoError(t, err)
	assert.True(t, due)

	require.NoError(t, svc.UpdatePlan(ctx, userID, models.PlanUpdateRequest{NewArchetype: "A", NewMinutes: 15}))
	p, err := svc.MyProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "A", p.Archetype)
	assert.Equal(t, 15, p.PreferredMinutes)

	due, err = svc.CheckWeeklyReview(ctx, userID)
	require.NoError(t, err)
	assert.False(t, due)
}

func TestUpdatePlan_ValidationAndConflict(t *testing.T) {
	store, clock, svc := newProfileFixture()
	ctx := context.Background()
	userID := store.addUser(0, clock.Now())

	err := svc.UpdatePlan(ctx, userID, models.PlanUpdateRequest{NewArchetype: "Z", NewMinutes: 3})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "new_archetype")
	assert.Contains(t, verr.Fields, "new_minutes")

	store.txErrs = []error{repository.ErrTxConflict}
	err = svc.UpdatePlan(ctx, userID, models.PlanUpdateRequest{NewArchetype: "A"})
	var terr *TransientError
	require.ErrorAs(t, err, &terr)
	assert.Nil(t, store.user(userID).LastWeeklyReview)
}
