package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rider_slip_service/internal/domain/changereq"
	"rider_slip_service/internal/domain/slip"
	idb "rider_slip_service/internal/infra/database"
)

func newTestAdminService() (*AdminService, *fakeBranchRepo, *fakeSlipRepo, *fakeChangeReqRepo) {
	branches := newFakeBranchRepo()
	slips := newFakeSlipRepo()
	requests := newFakeChangeReqRepo()
	svc := NewAdminService(branches, slips, requests, discardLogger())
	return svc, branches, slips, requests
}

func TestAddBranch(t *testing.T) {
	svc, _, _, _ := newTestAdminService()
	ctx := context.Background()

	b, err := svc.AddBranch(ctx, "B01", "Central")
	require.NoError(t, err)
	assert.Equal(t, "B01", b.Code)

	_, err = svc.AddBranch(ctx, "B01", "Central again")
	assert.ErrorIs(t, err, ErrBranchAlreadyExists)

	_, err = svc.AddBranch(ctx, "", "Nameless")
	assert.Error(t, err)
}

func TestAddRiderRequiresBranch(t *testing.T) {
	svc, _, _, _ := newTestAdminService()
	ctx := context.Background()

	_, err := svc.AddRider(ctx, "B99", "Ravi")
	assert.ErrorIs(t, err, idb.ErrBranchNotFound)

	_, err = svc.AddBranch(ctx, "B01", "Central")
	require.NoError(t, err)

	r, err := svc.AddRider(ctx, "B01", "Ravi")
	require.NoError(t, err)
	assert.True(t, r.IsActive)
	assert.NotZero(t, r.ID)
}

func TestReviewSlipLifecycle(t *testing.T) {
	svc, _, slips, _ := newTestAdminService()
	ctx := context.Background()

	entry := &slip.Entry{
		BranchCode: "B01",
		RiderID:    1,
		Category:   slip.CategoryCash,
		Quantity:   3,
		Status:     slip.StatusSubmitted,
		WeekLabel:  openWeek,
	}
	require.NoError(t, slips.Create(ctx, entry))

	reviewed, err := svc.ReviewSlip(ctx, entry.ID, true)
	require.NoError(t, err)
	assert.Equal(t, slip.StatusAccepted, reviewed.Status)

	// Already decided; reviewing again must fail.
	_, err = svc.ReviewSlip(ctx, entry.ID, false)
	assert.ErrorIs(t, err, ErrSlipNotReviewable)

	_, err = svc.ReviewSlip(ctx, 404, true)
	assert.ErrorIs(t, err, idb.ErrSlipNotFound)
}

func TestReviewSlipReject(t *testing.T) {
	svc, _, slips, _ := newTestAdminService()
	ctx := context.Background()

	entry := &slip.Entry{Status: slip.StatusSubmitted}
	require.NoError(t, slips.Create(ctx, entry))

	reviewed, err := svc.ReviewSlip(ctx, entry.ID, false)
	require.NoError(t, err)
	assert.Equal(t, slip.StatusRejected, reviewed.Status)
}

func TestDecideChangeRequest(t *testing.T) {
	svc, _, _, requests := newTestAdminService()
	ctx := context.Background()

	cr := &changereq.Request{BranchCode: "B01", SubmittedBy: "Alice", Message: "fix week", Status: changereq.StatusPending}
	require.NoError(t, requests.Create(ctx, cr))

	decided, err := svc.DecideChangeRequest(ctx, cr.ID, true)
	require.NoError(t, err)
	assert.Equal(t, changereq.StatusApproved, decided.Status)

	_, err = svc.DecideChangeRequest(ctx, cr.ID, false)
	assert.ErrorIs(t, err, ErrRequestAlreadyDecided)

	pending, err := svc.ListPendingChangeRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
