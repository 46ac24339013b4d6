package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"rider_slip_service/internal/domain/branch"
	"rider_slip_service/internal/domain/changereq"
	"rider_slip_service/internal/domain/notify"
	"rider_slip_service/internal/domain/slip"
)

var ErrRiderNotInBranch = fmt.Errorf("rider does not belong to the submitting branch")

// SubmissionService is the branch-facing workflow: it runs the intake
// coordinator and hands the staged entry to the record store, moving it to
// submitted. Change requests are raised here as well.
type SubmissionService struct {
	intake     *IntakeService
	slipRepo   slip.Repository
	branchRepo branch.Repository
	crRepo     changereq.Repository
	notifier   notify.Notifier
	logger     *logrus.Entry
}

func NewSubmissionService(
	intake *IntakeService,
	slipRepo slip.Repository,
	branchRepo branch.Repository,
	crRepo changereq.Repository,
	notifier notify.Notifier,
	logger *logrus.Entry,
) *SubmissionService {
	return &SubmissionService{
		intake:     intake,
		slipRepo:   slipRepo,
		branchRepo: branchRepo,
		crRepo:     crRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// SubmitSlip stages the slip via the intake coordinator and persists it.
// After a successful hand-off the durable copy belongs to the record store.
func (s *SubmissionService) SubmitSlip(ctx context.Context, req IntakeRequest) (*slip.Entry, error) {
	rider, err := s.branchRepo.GetRiderByID(ctx, req.RiderID)
	if err != nil {
		return nil, err
	}
	if rider.BranchCode != req.BranchCode {
		return nil, ErrRiderNotInBranch
	}

	entry, err := s.intake.Intake(ctx, req)
	if err != nil {
		return nil, err
	}

	entry.Status = slip.StatusSubmitted
	if err := s.slipRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to persist slip entry: %w", err)
	}

	if err := s.notifier.NotifyAdmin(fmt.Sprintf(
		"New slip: branch %s, rider %s, %s x%d, week %s",
		entry.BranchCode, rider.Name, entry.Category, entry.Quantity, entry.WeekLabel,
	)); err != nil {
		s.logger.WithError(err).Warn("Failed to notify admin about new slip")
	}

	return entry, nil
}

// ListBranchSlips returns the branch's slips for one reporting week.
func (s *SubmissionService) ListBranchSlips(ctx context.Context, branchCode, weekLabel string) ([]*slip.Entry, error) {
	return s.slipRepo.ListByBranchAndWeek(ctx, branchCode, weekLabel)
}

// SubmitChangeRequest raises a free-text amendment request for the branch.
func (s *SubmissionService) SubmitChangeRequest(ctx context.Context, branchCode, submittedBy, message string) (*changereq.Request, error) {
	if message == "" {
		return nil, fmt.Errorf("change request message must not be empty")
	}
	cr := &changereq.Request{
		BranchCode:  branchCode,
		SubmittedBy: submittedBy,
		Message:     message,
		Status:      changereq.StatusPending,
	}
	if err := s.crRepo.Create(ctx, cr); err != nil {
		return nil, fmt.Errorf("failed to create change request: %w", err)
	}

	if err := s.notifier.NotifyAdmin(fmt.Sprintf(
		"New change request #%d from branch %s: %s", cr.ID, cr.BranchCode, cr.Message,
	)); err != nil {
		s.logger.WithError(err).Warn("Failed to notify admin about change request")
	}

	return cr, nil
}

// ListBranchChangeRequests returns the branch's own requests, newest first.
func (s *SubmissionService) ListBranchChangeRequests(ctx context.Context, branchCode string) ([]*changereq.Request, error) {
	return s.crRepo.ListByBranch(ctx, branchCode)
}
