package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/vocabtrainer/internal/config"
	"github.com/example/vocabtrainer/internal/database"
)

// Notifier sends practice reminders to users.
type Notifier interface {
	SendPracticeReminder(userID int64) error
}

// Scheduler runs the daily reminder job. Users who have ever recorded an
// attempt get a nudge once per day, inside the configured hour window.
type Scheduler struct {
	scheduler *gocron.Scheduler
	history   *database.AttemptRecordRepository
	notifier  Notifier
	cfg       config.ReminderConfig
	log       *zap.Logger
}

// New creates a scheduler instance.
func New(history *database.AttemptRecordRepository, notifier Notifier, cfg config.ReminderConfig, log *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		history:   history,
		notifier:  notifier,
		cfg:       cfg,
		log:       log,
	}
}

// Start begins running the reminder job in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At(s.reminderTime()).Do(s.sendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// reminderTime picks the middle of the configured window.
func (s *Scheduler) reminderTime() string {
	hour := (s.cfg.StartHour + s.cfg.EndHour) / 2
	return time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format("15:04")
}

// sendReminders notifies every user with recorded practice history.
func (s *Scheduler) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, err := s.history.Users(ctx)
	if err != nil {
		s.log.Error("failed to get users for reminders", zap.Error(err))
		return
	}

	for _, userID := range users {
		if err := s.notifier.SendPracticeReminder(userID); err != nil {
			s.log.Warn("failed to send reminder", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
}
