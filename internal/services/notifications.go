package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"focus-backend/internal/gamification"
	"focus-backend/internal/models"
)

const (
	NotificationQueueKey = "queue:notifications"

	JobStreakReminder = "streak-reminder"
	JobReviewReminder = "weekly-review-reminder"
)

type ReminderCandidates interface {
	ListStreakCandidates(ctx context.Context, from, to time.Time) ([]*models.User, error)
	ListReviewCandidates(ctx context.Context, reviewedBefore, createdBefore time.Time) ([]*models.User, error)
}

type JobQueue interface {
	Enqueue(ctx context.Context, job models.NotificationJob) error
}

// RedisJobQueue appends jobs to the list the worker pool pops from.
type RedisJobQueue struct {
	redis *redis.Client
}

func NewRedisJobQueue(client *redis.Client) *RedisJobQueue {
	return &RedisJobQueue{redis: client}
}

func (q *RedisJobQueue) Enqueue(ctx context.Context, job models.NotificationJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	return q.redis.RPush(ctx, NotificationQueueKey, data).Err()
}

// NotificationScheduler queues streak and weekly review reminders once a day.
type NotificationScheduler struct {
	users ReminderCandidates
	queue JobQueue
	clock gamification.Clock
	loc   *time.Location
	hour  int
	sched gocron.Scheduler
}

func NewNotificationScheduler(users ReminderCandidates, queue JobQueue, clock gamification.Clock, loc *time.Location, hour int) *NotificationScheduler {
	if clock == nil {
		clock = gamification.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if hour < 0 || hour > 23 {
		hour = 19
	}
	return &NotificationScheduler{
		users: users,
		queue: queue,
		clock: clock,
		loc:   loc,
		hour:  hour,
	}
}

func (s *NotificationScheduler) Start() error {
	sched, err := gocron.NewScheduler(gocron.WithLocation(s.loc))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(s.hour), 0, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			s.RunOnce(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		sched.Shutdown()
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}

	sched.Start()
	s.sched = sched
	log.Printf("Notification scheduler started (daily at %02d:00 %s)", s.hour, s.loc)
	return nil
}

func (s *NotificationScheduler) Stop() {
	if s.sched == nil {
		return
	}
	if err := s.sched.Shutdown(); err != nil {
		log.Printf("notification scheduler: shutdown: %v", err)
	}
}

// RunOnce queues today's reminders and returns how many jobs were enqueued.
func (s *NotificationScheduler) RunOnce(ctx context.Context) int {
	now := s.clock.Now().In(s.loc)
	return s.queueStreakReminders(ctx, now) + s.queueReviewReminders(ctx, now)
}

func (s *NotificationScheduler) queueStreakReminders(ctx context.Context, now time.Time) int {
	y, m, d := now.Date()
	todayStart := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	users, err := s.users.ListStreakCandidates(ctx, yesterdayStart, todayStart)
	if err != nil {
		log.Printf("streak reminders: failed to list candidates: %v", err)
		return 0
	}

	queued := 0
	for _, u := range users {
		if !gamification.StreakAtRisk(u.CurrentStreakDays, u.LastStreakDate, now) {
			continue
		}
		if s.enqueue(ctx, JobStreakReminder, u, now) {
			queued++
		}
	}
	return queued
}

func (s *NotificationScheduler) queueReviewReminders(ctx context.Context, now time.Time) int {
	reviewedBefore := now.AddDate(0, 0, -gamification.ReviewIntervalDays)
	createdBefore := now.AddDate(0, 0, -gamification.ReviewGraceDays)

	users, err := s.users.ListReviewCandidates(ctx, reviewedBefore, createdBefore)
	if err != nil {
		log.Printf("review reminders: failed to list candidates: %v", err)
		return 0
	}

	queued := 0
	for _, u := range users {
		if !gamification.ReviewDue(now, u.CreatedAt, u.LastWeeklyReview) {
			continue
		}
		if s.enqueue(ctx, JobReviewReminder, u, now) {
			queued++
		}
	}
	return queued
}

func (s *NotificationScheduler) enqueue(ctx context.Context, jobType string, u *models.User, now time.Time) bool {
	job := models.NotificationJob{
		ID:         uuid.New(),
		Type:       jobType,
		UserID:     u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Streak:     u.CurrentStreakDays,
		EnqueuedAt: now,
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		log.Printf("%s: failed to enqueue for user %s: %v", jobType, u.ID, err)
		return false
	}
	return true
}
