package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"focus-backend/internal/events"
	"focus-backend/internal/gamification"
	"focus-backend/internal/models"
	"focus-backend/internal/repository"
)

const DefaultPreferredMinutes = 25

type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ProfileReader interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

type ProfileService struct {
	ledger    Ledger
	users     UserReader
	profiles  ProfileReader
	clock     gamification.Clock
	publisher events.Publisher
}

func NewProfileService(ledger Ledger, users UserReader, profiles ProfileReader, clock gamification.Clock, publisher events.Publisher) *ProfileService {
	if clock == nil {
		clock = gamification.SystemClock{}
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ProfileService{
		ledger:    ledger,
		users:     users,
		profiles:  profiles,
		clock:     clock,
		publisher: publisher,
	}
}

// Onboarding stores the quiz outcome, creating the profile on first use.
// created reports whether a new profile row was written.
func (s *ProfileService) Onboarding(ctx context.Context, userID uuid.UUID, req models.OnboardingRequest) (profile *models.Profile, created bool, err error) {
	fields := make(map[string]string)

	archetype, aErr := gamification.NormalizeArchetype(req.Archetype)
	if aErr != nil {
		fields["archetype"] = aErr.Error()
	}
	minutes := req.PreferredMinutes
	if minutes == 0 {
		minutes = DefaultPreferredMinutes
	}
	if mErr := gamification.ValidatePreferredMinutes(minutes); mErr != nil {
		fields["preferred_minutes"] = mErr.Error()
	}
	if req.Score < 0 {
		fields["score"] = "Score must not be negative"
	}
	var bio *string
	if req.Bio != nil {
		trimmed := strings.TrimSpace(*req.Bio)
		if len(trimmed) > 500 {
			fields["bio"] = "Bio must be at most 500 characters"
		}
		if trimmed != "" {
			bio = &trimmed
		}
	}
	if len(fields) > 0 {
		return nil, false, &ValidationError{Fields: fields}
	}

	err = s.ledger.InTx(ctx, func(q repository.Queries) error {
		if _, err := lockUser(ctx, q, userID); err != nil {
			return err
		}

		p, err := q.GetProfile(ctx, userID)
		if errors.Is(err, pgx.ErrNoRows) {
			p = &models.Profile{
				UserID:           userID,
				Archetype:        archetype,
				Bio:              bio,
				PreferredMinutes: minutes,
			}
			if err := q.InsertProfile(ctx, p); err != nil {
				return err
			}
			profile, created = p, true
			return nil
		}
		if err != nil {
			return err
		}

		p.Archetype = archetype
		p.PreferredMinutes = minutes
		if bio != nil {
			p.Bio = bio
		}
		if err := q.UpdateProfile(ctx, p); err != nil {
			return err
		}
		profile, created = p, false
		return nil
	})
	if err != nil {
		return nil, false, translate(err)
	}

	events.PublishLogged(ctx, s.publisher, events.New(events.ProfileUpdated, userID, s.clock.Now(), profile))
	return profile, created, nil
}

// MyProfile returns NotFoundError for users who have not onboarded yet.
func (s *ProfileService) MyProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Message: "Profile not found"}
	}
	return p, err
}

func (s *ProfileService) CheckWeeklyReview(ctx context.Context, userID uuid.UUID) (bool, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, errUserGone
	}
	if err != nil {
		return false, err
	}
	return gamification.ReviewDue(s.clock.Now(), u.CreatedAt, u.LastWeeklyReview), nil
}

// UpdatePlan records a weekly review. The profile is changed only when it
// exists; the review timestamp is always stamped.
func (s *ProfileService) UpdatePlan(ctx context.Context, userID uuid.UUID, req models.PlanUpdateRequest) error {
	fields := make(map[string]string)
	archetype, aErr := gamification.NormalizeArchetype(req.NewArchetype)
	if aErr != nil {
		fields["new_archetype"] = aErr.Error()
	}
	if req.NewMinutes != 0 {
		if mErr := gamification.ValidatePreferredMinutes(req.NewMinutes); mErr != nil {
			fields["new_minutes"] = mErr.Error()
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	now := s.clock.Now().UTC()
	err := s.ledger.InTx(ctx, func(q repository.Queries) error {
		u, err := lockUser(ctx, q, userID)
		if err != nil {
			return err
		}

		p, err := q.GetProfile(ctx, userID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
		case err != nil:
			return err
		default:
			p.Archetype = archetype
			if req.NewMinutes != 0 {
				p.PreferredMinutes = req.NewMinutes
			}
			if err := q.UpdateProfile(ctx, p); err != nil {
				return err
			}
		}

		reviewed := now
		u.LastWeeklyReview = &reviewed
		return q.SaveGamificationState(ctx, u)
	})
	return translate(err)
}
