package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"focus-backend/internal/models"
)

// ErrTxConflict is returned when a transaction kept failing with
// serialization or deadlock errors until the attempts ran out.
var ErrTxConflict = errors.New("transaction conflict, retry later")

// Queries is what a gamification transaction may read and write. Callers
// must lock the user row first; everything else for that user is then
// serialized behind the lock.
type Queries interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error)
	SaveGamificationState(ctx context.Context, u *models.User) error
	InsertSession(ctx context.Context, s *models.StudySession) error
	GetItem(ctx context.Context, userID uuid.UUID, itemID string) (*models.InventoryItem, error)
	InsertItem(ctx context.Context, item *models.InventoryItem) error
	UpdateItemQuantity(ctx context.Context, item *models.InventoryItem) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	InsertProfile(ctx context.Context, p *models.Profile) error
	UpdateProfile(ctx context.Context, p *models.Profile) error
}

type txQueries struct {
	*UserRepo
	*ProfileRepo
	*InventoryRepo
	*StudySessionRepo
}

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

const (
	initialBackoff = 75 * time.Millisecond
	maxBackoff     = 1200 * time.Millisecond
)

// Ledger runs read-modify-write units of work against PostgreSQL.
type Ledger struct {
	db          TxBeginner
	maxAttempts int
	backoff     time.Duration
}

func NewLedger(db TxBeginner, maxAttempts int) *Ledger {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Ledger{db: db, maxAttempts: maxAttempts, backoff: initialBackoff}
}

// InTx runs fn in a READ COMMITTED transaction and commits if fn returns nil.
// fn is re-run from scratch on serialization failures and deadlocks, so it
// must not keep state between attempts.
func (l *Ledger) InTx(ctx context.Context, fn func(q Queries) error) error {
	delay := l.backoff

	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		err := l.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}

		log.Printf("ledger: retryable conflict (attempt %d/%d): %v", attempt, l.maxAttempts, err)
		if attempt == l.maxAttempts {
			break
		}
		if err := sleepWithContext(ctx, delay); err != nil {
			return err
		}
		if delay < maxBackoff {
			delay *= 2
		}
	}

	return ErrTxConflict
}

func (l *Ledger) runOnce(ctx context.Context, fn func(q Queries) error) error {
	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := txQueries{
		UserRepo:         NewUserRepo(tx),
		ProfileRepo:      NewProfileRepo(tx),
		InventoryRepo:    NewInventoryRepo(tx),
		StudySessionRepo: NewStudySessionRepo(tx),
	}
	if err := fn(q); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
