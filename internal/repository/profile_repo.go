package repository

import (
	"context"

	"github.com/google/uuid"

	"focus-backend/internal/models"
)

type ProfileRepo struct {
	db DBTX
}

func NewProfileRepo(db DBTX) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p := &models.Profile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, archetype, bio, preferred_minutes, updated_at
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.Archetype, &p.Bio, &p.PreferredMinutes, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepo) InsertProfile(ctx context.Context, p *models.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO profiles (id, user_id, archetype, bio, preferred_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING updated_at
	`, p.ID, p.UserID, p.Archetype, p.Bio, p.PreferredMinutes).Scan(&p.UpdatedAt)
}

func (r *ProfileRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	return r.db.QueryRow(ctx, `
		UPDATE profiles
		SET archetype = $1, bio = $2, preferred_minutes = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`, p.Archetype, p.Bio, p.PreferredMinutes, p.ID).Scan(&p.UpdatedAt)
}
