package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"rider_slip_service/internal/app"
)

// ReminderScheduler runs the recurring admin notifications: the Monday
// week-open announcement and the daily pending change-request digest.
type ReminderScheduler struct {
	cronEngine       *cron.Cron
	reminders        *app.ReminderService
	logger           *logrus.Entry
	cronSpecWeekOpen string
	cronSpecDigest   string
}

func NewReminderScheduler(
	reminders *app.ReminderService,
	logger *logrus.Entry,
	cronSpecWeekOpen string, // e.g. "0 9 * * 1" (Monday 09:00)
	cronSpecDigest string, // e.g. "0 18 * * *" (18:00 daily)
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine:       cron.New(cron.WithLocation(time.Local)),
		reminders:        reminders,
		logger:           logger,
		cronSpecWeekOpen: cronSpecWeekOpen,
		cronSpecDigest:   cronSpecDigest,
	}
}

func (s *ReminderScheduler) Start() {
	s.logger.Info("Starting reminder scheduler")

	_, err := s.cronEngine.AddFunc(s.cronSpecWeekOpen, func() {
		s.logger.Info("Cron job triggered: week-open announcement")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.reminders.AnnounceWeekOpen(ctx); err != nil {
			s.logger.WithError(err).Error("Week-open announcement failed")
		}
	})
	if err != nil {
		s.logger.WithError(err).Fatal("Could not add week-open cron job")
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecDigest, func() {
		s.logger.Info("Cron job triggered: change request digest")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.reminders.SendPendingDigest(ctx); err != nil {
			s.logger.WithError(err).Error("Change request digest failed")
		}
	})
	if err != nil {
		s.logger.WithError(err).Fatal("Could not add digest cron job")
	}

	s.cronEngine.Start()
	s.logger.Info("Reminder scheduler started with jobs")
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped")
}
