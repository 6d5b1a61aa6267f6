package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"focus-backend/internal/events"
	"focus-backend/internal/gamification"
	"focus-backend/internal/models"
	"focus-backend/internal/repository"
)

// Ledger runs a unit of work with the caller's user row locked.
type Ledger interface {
	InTx(ctx context.Context, fn func(q repository.Queries) error) error
}

type SessionReader interface {
	ListCompletedStartsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error)
}

type InventoryReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error)
}

type GamificationOptions struct {
	Clock          gamification.Clock
	Random         gamification.RandomSource
	Location       *time.Location
	Wheel          *gamification.Wheel
	Catalog        gamification.Catalog
	EnforceCatalog bool
	Publisher      events.Publisher
}

type GamificationService struct {
	ledger         Ledger
	sessions       SessionReader
	inventory      InventoryReader
	clock          gamification.Clock
	random         gamification.RandomSource
	loc            *time.Location
	wheel          *gamification.Wheel
	catalog        gamification.Catalog
	enforceCatalog bool
	publisher      events.Publisher
}

func NewGamificationService(ledger Ledger, sessions SessionReader, inventory InventoryReader, opts GamificationOptions) *GamificationService {
	s := &GamificationService{
		ledger:         ledger,
		sessions:       sessions,
		inventory:      inventory,
		clock:          opts.Clock,
		random:         opts.Random,
		loc:            opts.Location,
		wheel:          opts.Wheel,
		catalog:        opts.Catalog,
		enforceCatalog: opts.EnforceCatalog,
		publisher:      opts.Publisher,
	}
	if s.clock == nil {
		s.clock = gamification.SystemClock{}
	}
	if s.random == nil {
		s.random = gamification.DefaultRandom()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.wheel == nil {
		s.wheel = gamification.DefaultWheel()
	}
	if s.catalog == nil {
		s.catalog = gamification.DefaultCatalog()
	}
	if s.publisher == nil {
		s.publisher = events.Noop{}
	}
	return s
}

func (s *GamificationService) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// lockUser loads the caller's row inside a ledger transaction.
func lockUser(ctx context.Context, q repository.Queries, userID uuid.UUID) (*models.User, error) {
	u, err := q.GetByIDForUpdate(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errUserGone
	}
	return u, err
}

func (s *GamificationService) CompleteSession(ctx context.Context, userID uuid.UUID, req models.CompleteSessionRequest) (*models.SessionCompletion, error) {
	if err := gamification.ValidateDuration(req.DurationMinutes); err != nil {
		return nil, translate(err)
	}

	now := s.now()
	var (
		res  models.SessionCompletion
		user models.User
	)
	err := s.ledger.InTx(ctx, func(q repository.Queries) error {
		u, err := lockUser(ctx, q, userID)
		if err != nil {
			return err
		}

		session, completion := gamification.CompleteSession(u, req.DurationMinutes, req.Label, now)
		if err := q.InsertSession(ctx, session); err != nil {
			return err
		}
		if err := q.SaveGamificationState(ctx, u); err != nil {
			return err
		}

		res, user = completion, *u
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	ev := events.New(events.SessionCompleted, userID, now, map[string]interface{}{
		"duration_minutes": req.DurationMinutes,
		"result":           res,
	})
	ev.Points = pointsUpdate("session_completed", &user, res.PointsEarned)
	events.PublishLogged(ctx, s.publisher, ev)

	return &res, nil
}

func (s *GamificationService) Spin(ctx context.Context, userID uuid.UUID) (*models.SpinResult, error) {
	now := s.now()
	var (
		res  models.SpinResult
		user models.User
	)
	err := s.ledger.InTx(ctx, func(q repository.Queries) error {
		u, err := lockUser(ctx, q, userID)
		if err != nil {
			return err
		}

		spin, err := s.wheel.Spin(u, s.random)
		if errors.Is(err, gamification.ErrInsufficientFunds) {
			return &InsufficientFundsError{Balance: u.CurrentPoints, Required: s.wheel.Cost()}
		}
		if err != nil {
			return err
		}
		if err := q.SaveGamificationState(ctx, u); err != nil {
			return err
		}

		res, user = spin, *u
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	ev := events.New(events.WheelSpun, userID, now, res)
	ev.Points = pointsUpdate("wheel_spun", &user, res.PrizeValue-s.wheel.Cost())
	events.PublishLogged(ctx, s.publisher, ev)

	return &res, nil
}

func (s *GamificationService) Buy(ctx context.Context, userID uuid.UUID, req models.PurchaseRequest) (*models.PurchaseResult, error) {
	req.ItemID = strings.TrimSpace(req.ItemID)
	req.Name = strings.TrimSpace(req.Name)
	if req.ItemID == "" {
		return nil, &ValidationError{Fields: map[string]string{"item_id": "Item id is required"}}
	}

	if s.enforceCatalog {
		if err := s.catalog.Check(req); err != nil {
			return nil, translate(err)
		}
		req.Name = s.catalog[req.ItemID].Name
	} else {
		if req.Price < 0 {
			return nil, &ValidationError{Fields: map[string]string{"price": "Price must not be negative"}}
		}
		if req.Name == "" {
			req.Name = req.ItemID
		}
	}

	now := s.now()
	var (
		res  models.PurchaseResult
		user models.User
	)
	err := s.ledger.InTx(ctx, func(q repository.Queries) error {
		u, err := lockUser(ctx, q, userID)
		if err != nil {
			return err
		}

		existing, err := q.GetItem(ctx, userID, req.ItemID)
		if errors.Is(err, pgx.ErrNoRows) {
			existing = nil
		} else if err != nil {
			return err
		}

		item, created, purchase, err := gamification.Purchase(u, existing, req, now)
		if errors.Is(err, gamification.ErrInsufficientFunds) {
			return &InsufficientFundsError{Balance: u.CurrentPoints, Required: req.Price}
		}
		if err != nil {
			return err
		}

		if created {
			err = q.InsertItem(ctx, item)
		} else {
			err = q.UpdateItemQuantity(ctx, item)
		}
		if err != nil {
			return err
		}
		if err := q.SaveGamificationState(ctx, u); err != nil {
			return err
		}

		res, user = purchase, *u
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	ev := events.New(events.ItemPurchased, userID, now, map[string]interface{}{
		"item_id": req.ItemID,
		"price":   req.Price,
	})
	ev.Points = pointsUpdate("item_purchased", &user, -req.Price)
	events.PublishLogged(ctx, s.publisher, ev)

	return &res, nil
}

// WeeklyStats reports which days of the current Monday-based week had at
// least one completed session.
func (s *GamificationService) WeeklyStats(ctx context.Context, userID uuid.UUID) (*models.WeeklyStats, error) {
	today := s.now()
	starts, err := s.sessions.ListCompletedStartsSince(ctx, userID, gamification.WeekStart(today))
	if err != nil {
		return nil, err
	}
	stats := gamification.BuildWeeklyStats(today, starts)
	return &stats, nil
}

func (s *GamificationService) Inventory(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error) {
	return s.inventory.ListByUser(ctx, userID)
}

type WheelView struct {
	Cost   int                  `json:"cost"`
	Prizes []gamification.Prize `json:"prizes"`
}

type CatalogView struct {
	Items          []gamification.CatalogItem `json:"items"`
	Wheel          WheelView                  `json:"wheel"`
	PricesEnforced bool                       `json:"prices_enforced"`
}

func (s *GamificationService) Catalog() CatalogView {
	return CatalogView{
		Items:          s.catalog.Items(),
		Wheel:          WheelView{Cost: s.wheel.Cost(), Prizes: s.wheel.Prizes()},
		PricesEnforced: s.enforceCatalog,
	}
}

func pointsUpdate(reason string, u *models.User, delta int) *models.PointsUpdate {
	return &models.PointsUpdate{
		Reason:            reason,
		CurrentPoints:     u.CurrentPoints,
		CurrentStreakDays: u.CurrentStreakDays,
		Delta:             delta,
	}
}
