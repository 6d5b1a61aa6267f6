package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"focus-backend/internal/models"
	"focus-backend/internal/repository"
)

// memStore is an in-memory stand-in for PostgreSQL. InTx holds the store
// lock for the whole unit of work and restores a snapshot when fn fails.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]models.User
	profiles map[uuid.UUID]models.Profile
	items    map[string]models.InventoryItem
	sessions []models.StudySession
	goals    map[uuid.UUID]models.Goal

	txErrs  []error
	txCalls int
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]models.User),
		profiles: make(map[uuid.UUID]models.Profile),
		items:    make(map[string]models.InventoryItem),
		goals:    make(map[uuid.UUID]models.Goal),
	}
}

func (s *memStore) addUser(points int, createdAt time.Time) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{ID: uuid.New(), Email: "student@example.com", FullName: "Ada Student", CreatedAt: createdAt, CurrentPoints: points}
	s.users[u.ID] = u
	return u.ID
}

func (s *memStore) user(id uuid.UUID) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func itemKey(userID uuid.UUID, itemID string) string { return userID.String() + "|" + itemID }

func (s *memStore) InTx(ctx context.Context, fn func(q repository.Queries) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txCalls++
	if len(s.txErrs) > 0 {
		err := s.txErrs[0]
		s.txErrs = s.txErrs[1:]
		return err
	}

	users := cloneMap(s.users)
	profiles := cloneMap(s.profiles)
	items := cloneMap(s.items)
	sessions := append([]models.StudySession(nil), s.sessions...)

	if err := fn(memTx{s}); err != nil {
		s.users, s.profiles, s.items, s.sessions = users, profiles, items, sessions
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// memTx runs with memStore.mu already held.
type memTx struct{ s *memStore }

func (t memTx) GetByIDForUpdate(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := t.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (t memTx) SaveGamificationState(_ context.Context, u *models.User) error {
	t.s.users[u.ID] = *u
	return nil
}

func (t memTx) InsertSession(_ context.Context, sess *models.StudySession) error {
	t.s.sessions = append(t.s.sessions, *sess)
	return nil
}

func (t memTx) GetItem(_ context.Context, userID uuid.UUID, itemID string) (*models.InventoryItem, error) {
	it, ok := t.s.items[itemKey(userID, itemID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &it, nil
}

func (t memTx) InsertItem(_ context.Context, it *models.InventoryItem) error {
	key := itemKey(it.UserID, it.ItemID)
	if _, exists := t.s.items[key]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	t.s.items[key] = *it
	return nil
}

func (t memTx) UpdateItemQuantity(_ context.Context, it *models.InventoryItem) error {
	t.s.items[itemKey(it.UserID, it.ItemID)] = *it
	return nil
}

func (t memTx) GetProfile(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, ok := t.s.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (t memTx) InsertProfile(_ context.Context, p *models.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	t.s.profiles[p.UserID] = *p
	return nil
}

func (t memTx) UpdateProfile(_ context.Context, p *models.Profile) error {
	t.s.profiles[p.UserID] = *p
	return nil
}

// Reads outside a transaction.

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (s *memStore) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memTx{s}.GetProfile(ctx, userID)
}

func (s *memStore) ListCompletedStartsSince(_ context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var starts []time.Time
	for _, sess := range s.sessions {
		if sess.UserID == userID && sess.Completed && !sess.StartedAt.Before(since) {
			starts = append(starts, sess.StartedAt)
		}
	}
	return starts, nil
}

func (s *memStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.InventoryItem, 0)
	for _, it := range s.items {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ItemID < items[j].ItemID })
	return items, nil
}

// Goals.

type memGoals struct{ s *memStore }

func (g memGoals) Create(_ context.Context, goal *models.Goal) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	goal.ID = uuid.New()
	goal.CreatedAt = time.Now()
	g.s.goals[goal.ID] = *goal
	return nil
}

func (g memGoals) GetByID(_ context.Context, id uuid.UUID) (*models.Goal, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	goal, ok := g.s.goals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &goal, nil
}

func (g memGoals) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Goal, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	out := make([]models.Goal, 0)
	for _, goal := range g.s.goals {
		if goal.UserID == userID {
			out = append(out, goal)
		}
	}
	return out, nil
}

func (g memGoals) Update(_ context.Context, goal *models.Goal) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	g.s.goals[goal.ID] = *goal
	return nil
}

func (g memGoals) Delete(_ context.Context, id uuid.UUID) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	delete(g.s.goals, id)
	return nil
}

// Test doubles for time, randomness and events.

type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *stepClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// fixedDraw always lands on the same position of the weight table.
type fixedDraw int

func (d fixedDraw) IntN(n int) int { return int(d) % n }

type capturePublisher struct {
	mu     sync.Mutex
	events []models.DomainEvent
}

func (p *capturePublisher) Publish(_ context.Context, ev models.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) all() []models.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.DomainEvent(nil), p.events...)
}
