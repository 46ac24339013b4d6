package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"rider_slip_service/internal/domain/changereq"
	"rider_slip_service/internal/domain/notify"
	"rider_slip_service/internal/domain/week"
)

// ReminderService produces the scheduled admin notifications: the Monday
// announcement that a new reporting week opened, and the daily digest of
// change requests still awaiting a decision.
type ReminderService struct {
	crRepo   changereq.Repository
	notifier notify.Notifier
	logger   *logrus.Entry
	now      func() time.Time
}

func NewReminderService(crRepo changereq.Repository, notifier notify.Notifier, logger *logrus.Entry) *ReminderService {
	return &ReminderService{
		crRepo:   crRepo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// AnnounceWeekOpen tells the admin which reporting week just closed and is
// now open for slip submission.
func (s *ReminderService) AnnounceWeekOpen(ctx context.Context) error {
	weeks := week.Recent(s.now(), 1)
	if len(weeks) == 0 {
		return nil
	}
	label := weeks[0].Label()
	s.logger.WithField("week_label", label).Info("Announcing newly opened reporting week")
	return s.notifier.NotifyAdmin(fmt.Sprintf("Reporting week %s is now open for slip submission.", label))
}

// SendPendingDigest reminds the admin of undecided change requests. No
// message is sent when nothing is pending.
func (s *ReminderService) SendPendingDigest(ctx context.Context) error {
	pending, err := s.crRepo.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending change requests: %w", err)
	}
	if len(pending) == 0 {
		s.logger.Debug("No pending change requests, skipping digest")
		return nil
	}

	text := fmt.Sprintf("%d change request(s) awaiting review:", len(pending))
	for _, cr := range pending {
		text += fmt.Sprintf("\n#%d [%s] %s", cr.ID, cr.BranchCode, cr.Message)
	}
	s.logger.WithField("pending", len(pending)).Info("Sending change request digest")
	return s.notifier.NotifyAdmin(text)
}
