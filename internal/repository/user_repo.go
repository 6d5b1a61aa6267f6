package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"focus-backend/internal/models"
)

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, password_hash, full_name, created_at,
	current_points, current_streak_days, last_streak_date, last_weekly_review`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt,
		&u.CurrentPoints, &u.CurrentStreakDays, &u.LastStreakDate, &u.LastWeeklyReview,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	user.ID = uuid.New()
	user.CurrentPoints = 0
	user.CurrentStreakDays = 0

	return r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName,
	).Scan(&user.CreatedAt)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// GetByIDForUpdate locks the user row until the surrounding transaction ends.
func (r *UserRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1 FOR UPDATE", id))
}

func (r *UserRepo) SaveGamificationState(ctx context.Context, u *models.User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET current_points = $1,
			current_streak_days = $2,
			last_streak_date = $3,
			last_weekly_review = $4
		WHERE id = $5
	`, u.CurrentPoints, u.CurrentStreakDays, u.LastStreakDate, u.LastWeeklyReview, u.ID)
	return err
}

// ListStreakCandidates returns users whose last qualifying session falls in
// [from, to). The reminder job passes yesterday's bounds.
func (r *UserRepo) ListStreakCandidates(ctx context.Context, from, to time.Time) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, "SELECT "+userColumns+`
		FROM users
		WHERE current_streak_days > 0
		  AND last_streak_date >= $1
		  AND last_streak_date < $2
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListReviewCandidates returns users that have not reviewed their plan since
// reviewedBefore (or never did) and signed up before createdBefore.
func (r *UserRepo) ListReviewCandidates(ctx context.Context, reviewedBefore, createdBefore time.Time) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, "SELECT "+userColumns+`
		FROM users
		WHERE (last_weekly_review IS NULL AND created_at <= $2)
		   OR last_weekly_review <= $1
	`, reviewedBefore, createdBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
