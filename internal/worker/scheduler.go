package worker

import (
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"clipaja/internal/consumers"
	"clipaja/internal/models"
)

// refreshInterval is how stale a post's metrics may get before the scheduler
// queues it for a refresh.
const refreshInterval = time.Hour

// Scheduler periodically sweeps posts on active contests and enqueues a
// refresh task for each one whose metrics have gone stale.
type Scheduler struct {
	DB     *gorm.DB
	Client *asynq.Client
}

func NewScheduler(db *gorm.DB, client *asynq.Client) *Scheduler {
	return &Scheduler{DB: db, Client: client}
}

func (s *Scheduler) EnqueueDueRefreshes() {
	cutoff := time.Now().Add(-refreshInterval)

	var postIds []string
	err := s.DB.Model(&models.Post{}).
		Joins("INNER JOIN contests ON contests.id = posts.contest_id").
		Where("contests.status = ?", models.ContestActive).
		Where("posts.status NOT IN (?)", []models.PostStatus{models.PostRejected, models.PostRemoved}).
		Where("posts.last_view_check IS NULL OR posts.last_view_check < ?", cutoff).
		Pluck("posts.id", &postIds).Error
	if err != nil {
		log.Printf("scheduler: failed to list stale posts: %v", err)
		return
	}

	for _, id := range postIds {
		task, err := NewRefreshViewsTask(consumers.RefreshViewsDTO{PostId: id})
		if err != nil {
			log.Printf("scheduler: failed to build task for post %s: %v", id, err)
			continue
		}
		if _, err := s.Client.Enqueue(task, asynq.Queue("low"), asynq.MaxRetry(3)); err != nil {
			log.Printf("scheduler: failed to enqueue refresh for post %s: %v", id, err)
		}
	}

	if len(postIds) > 0 {
		log.Printf("scheduler: enqueued %d view refresh tasks", len(postIds))
	}
}

// StartScheduler initializes the cron job to sweep every 30 minutes
func (s *Scheduler) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("*/30 * * * *", func() {
		log.Println("Running scheduled view refresh sweep...")
		s.EnqueueDueRefreshes()
	})
	if err != nil {
		log.Printf("scheduler: failed to register cron job: %v", err)
		return
	}
	c.Start()
}
