package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"focus-backend/internal/models"
)

type StudySessionRepo struct {
	db DBTX
}

func NewStudySessionRepo(db DBTX) *StudySessionRepo {
	return &StudySessionRepo{db: db}
}

func (r *StudySessionRepo) InsertSession(ctx context.Context, s *models.StudySession) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO study_sessions (id, user_id, label, intended_minutes, started_at, ended_at, completed, abandon_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.UserID, s.Label, s.IntendedMinutes, s.StartedAt, s.EndedAt, s.Completed, s.AbandonReason)
	return err
}

// ListCompletedStartsSince returns started_at of every completed session of
// the user at or after since.
func (r *StudySessionRepo) ListCompletedStartsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `
		SELECT started_at
		FROM study_sessions
		WHERE user_id = $1
		  AND completed = TRUE
		  AND started_at >= $2
		ORDER BY started_at
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	starts := make([]time.Time, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		starts = append(starts, t)
	}
	return starts, rows.Err()
}
