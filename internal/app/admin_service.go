package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"rider_slip_service/internal/domain/branch"
	"rider_slip_service/internal/domain/changereq"
	"rider_slip_service/internal/domain/slip"
	idb "rider_slip_service/internal/infra/database"
)

// Custom application-level errors for admin service
var ErrBranchAlreadyExists = fmt.Errorf("branch with this code already exists")
var ErrSlipNotReviewable = fmt.Errorf("slip is not awaiting review")
var ErrRequestAlreadyDecided = fmt.Errorf("change request was already decided")

type AdminService struct {
	branchRepo branch.Repository
	slipRepo   slip.Repository
	crRepo     changereq.Repository
	logger     *logrus.Entry
}

func NewAdminService(br branch.Repository, sr slip.Repository, cr changereq.Repository, logger *logrus.Entry) *AdminService {
	return &AdminService{
		branchRepo: br,
		slipRepo:   sr,
		crRepo:     cr,
		logger:     logger,
	}
}

// AddBranch registers a new branch office.
func (s *AdminService) AddBranch(ctx context.Context, code, name string) (*branch.Branch, error) {
	if code == "" || name == "" {
		return nil, fmt.Errorf("branch code and name must not be empty")
	}

	_, err := s.branchRepo.GetByCode(ctx, code)
	if err == nil {
		return nil, ErrBranchAlreadyExists
	}
	if err != idb.ErrBranchNotFound {
		return nil, fmt.Errorf("failed to check existing branch: %w", err)
	}

	b := &branch.Branch{Code: code, Name: name}
	if err := s.branchRepo.Create(ctx, b); err != nil {
		if err == idb.ErrDuplicateBranchCode {
			return nil, ErrBranchAlreadyExists
		}
		return nil, fmt.Errorf("failed to create branch in repository: %w", err)
	}

	s.logger.WithField("branch_code", b.Code).Info("Branch added")
	return b, nil
}

// ListBranches returns all registered branches.
func (s *AdminService) ListBranches(ctx context.Context) ([]*branch.Branch, error) {
	return s.branchRepo.ListAll(ctx)
}

// AddRider attaches a new active rider to an existing branch.
func (s *AdminService) AddRider(ctx context.Context, branchCode, name string) (*branch.Rider, error) {
	if name == "" {
		return nil, fmt.Errorf("rider name must not be empty")
	}
	if _, err := s.branchRepo.GetByCode(ctx, branchCode); err != nil {
		return nil, err
	}

	r := &branch.Rider{BranchCode: branchCode, Name: name, IsActive: true}
	if err := s.branchRepo.AddRider(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to add rider in repository: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"branch_code": branchCode, "rider_id": r.ID}).Info("Rider added")
	return r, nil
}

// ListRiders returns a branch's riders.
func (s *AdminService) ListRiders(ctx context.Context, branchCode string) ([]*branch.Rider, error) {
	return s.branchRepo.ListRiders(ctx, branchCode)
}

// ListWeekSlips returns every branch's slips for one reporting week.
func (s *AdminService) ListWeekSlips(ctx context.Context, weekLabel string) ([]*slip.Entry, error) {
	return s.slipRepo.ListByWeek(ctx, weekLabel)
}

// ReviewSlip moves a submitted slip to accepted or rejected.
func (s *AdminService) ReviewSlip(ctx context.Context, id int64, accept bool) (*slip.Entry, error) {
	entry, err := s.slipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Status != slip.StatusSubmitted {
		return nil, ErrSlipNotReviewable
	}

	newStatus := slip.StatusRejected
	if accept {
		newStatus = slip.StatusAccepted
	}
	if err := s.slipRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update slip status: %w", err)
	}
	entry.Status = newStatus

	s.logger.WithFields(logrus.Fields{"slip_id": id, "status": newStatus}).Info("Slip reviewed")
	return entry, nil
}

// ListPendingChangeRequests returns every undecided change request.
func (s *AdminService) ListPendingChangeRequests(ctx context.Context) ([]*changereq.Request, error) {
	return s.crRepo.ListPending(ctx)
}

// DecideChangeRequest approves or rejects a pending change request.
func (s *AdminService) DecideChangeRequest(ctx context.Context, id int64, approve bool) (*changereq.Request, error) {
	cr, err := s.crRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr.Status != changereq.StatusPending {
		return nil, ErrRequestAlreadyDecided
	}

	newStatus := changereq.StatusRejected
	if approve {
		newStatus = changereq.StatusApproved
	}
	if err := s.crRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update change request status: %w", err)
	}
	cr.Status = newStatus

	s.logger.WithFields(logrus.Fields{"request_id": id, "status": newStatus}).Info("Change request decided")
	return cr, nil
}
