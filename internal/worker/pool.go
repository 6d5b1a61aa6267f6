package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"focus-backend/internal/models"
	"focus-backend/internal/services"
)

const (
	maxAttempts = 3
	sentTTL     = 36 * time.Hour
	popTimeout  = 5 * time.Second
)

type Mailer interface {
	SendStreakReminderEmail(to, fullName string, streak int) error
	SendWeeklyReviewEmail(to, fullName string) error
}

// JobStore is the slice of *redis.Client the pool needs.
type JobStore interface {
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Pool drains the notification queue with a fixed number of goroutines.
type Pool struct {
	redis       JobStore
	mailer      Mailer
	workerCount int
	stopChan    chan struct{}
	wg          sync.WaitGroup
	once        sync.Once
}

func NewPool(redisClient JobStore, mailer Mailer, workerCount int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Pool{
		redis:       redisClient,
		mailer:      mailer,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	log.Printf("Started %d worker goroutines", p.workerCount)
}

// Stop waits for in-flight jobs; idle workers notice within popTimeout.
func (p *Pool) Stop() {
	p.once.Do(func() { close(p.stopChan) })
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		result, err := p.redis.BLPop(ctx, popTimeout, services.NotificationQueueKey).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Printf("Worker %d: queue read failed: %v", id, err)
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}

		p.handleJob(ctx, id, result[1])
	}
}

func (p *Pool) handleJob(ctx context.Context, id int, raw string) {
	var job models.NotificationJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Printf("Worker %d: failed to parse job: %v", id, err)
		return
	}

	// One reminder of each kind per user and day, even if the scheduler
	// ran on several instances.
	key := sentKey(job)
	locked, err := p.redis.SetNX(ctx, key, job.ID.String(), sentTTL).Result()
	if err != nil {
		log.Printf("Worker %d: dedupe check for job %s failed: %v", id, job.ID, err)
		p.handleFailure(ctx, job, err)
		return
	}
	if !locked {
		return
	}

	log.Printf("Worker %d: processing job %s (type: %s)", id, job.ID, job.Type)

	if err := p.process(job); err != nil {
		p.redis.Del(ctx, key)
		p.handleFailure(ctx, job, err)
	}
}

func (p *Pool) process(job models.NotificationJob) error {
	switch job.Type {
	case services.JobStreakReminder:
		return p.mailer.SendStreakReminderEmail(job.Email, job.FullName, job.Streak)
	case services.JobReviewReminder:
		return p.mailer.SendWeeklyReviewEmail(job.Email, job.FullName)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (p *Pool) handleFailure(ctx context.Context, job models.NotificationJob, procErr error) {
	job.Attempts++
	if job.Attempts >= maxAttempts {
		log.Printf("Job %s failed permanently after %d attempts: %v", job.ID, job.Attempts, procErr)
		return
	}

	log.Printf("Job %s failed (attempt %d/%d), requeueing: %v", job.ID, job.Attempts, maxAttempts, procErr)
	data, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := p.redis.RPush(ctx, services.NotificationQueueKey, data).Err(); err != nil {
		log.Printf("Job %s: requeue failed: %v", job.ID, err)
	}
}

func sentKey(job models.NotificationJob) string {
	return fmt.Sprintf("notify_sent:%s:%s:%s", job.Type, job.UserID, job.EnqueuedAt.Format("2006-01-02"))
}
