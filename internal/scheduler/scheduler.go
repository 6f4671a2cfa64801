package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/linguaweb/internal/database"
)

// Scheduler manages periodic maintenance tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  *database.SessionRepository
	log       *zap.Logger
}

// New creates a new scheduler instance
func New(sessions *database.SessionRepository, log *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		log:       log,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Sweep expired login sessions hourly
	s.scheduler.Every(1).Hour().Do(s.sweepExpiredSessions)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sweepExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.log.Error("failed to sweep expired sessions", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.log.Info("swept expired sessions", zap.Int64("deleted", deleted))
	}
}
