package app

import (
	"context"
	"sync"

	"rider_slip_service/internal/domain/branch"
	"rider_slip_service/internal/domain/changereq"
	"rider_slip_service/internal/domain/slip"
	idb "rider_slip_service/internal/infra/database"
)

type fakeBranchRepo struct {
	mu       sync.Mutex
	branches map[string]*branch.Branch
	riders   map[int64]*branch.Rider
	nextID   int64
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{
		branches: make(map[string]*branch.Branch),
		riders:   make(map[int64]*branch.Rider),
	}
}

func (r *fakeBranchRepo) Create(ctx context.Context, b *branch.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.branches[b.Code]; ok {
		return idb.ErrDuplicateBranchCode
	}
	r.branches[b.Code] = b
	return nil
}

func (r *fakeBranchRepo) GetByCode(ctx context.Context, code string) (*branch.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.branches[code]
	if !ok {
		return nil, idb.ErrBranchNotFound
	}
	return b, nil
}

func (r *fakeBranchRepo) ListAll(ctx context.Context) ([]*branch.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*branch.Branch, 0, len(r.branches))
	for _, b := range r.branches {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBranchRepo) AddRider(ctx context.Context, rd *branch.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.branches[rd.BranchCode]; !ok {
		return idb.ErrBranchNotFound
	}
	r.nextID++
	rd.ID = r.nextID
	r.riders[rd.ID] = rd
	return nil
}

func (r *fakeBranchRepo) GetRiderByID(ctx context.Context, id int64) (*branch.Rider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rd, ok := r.riders[id]
	if !ok {
		return nil, idb.ErrRiderNotFound
	}
	return rd, nil
}

func (r *fakeBranchRepo) ListRiders(ctx context.Context, branchCode string) ([]*branch.Rider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*branch.Rider, 0)
	for _, rd := range r.riders {
		if rd.BranchCode == branchCode {
			out = append(out, rd)
		}
	}
	return out, nil
}

type fakeSlipRepo struct {
	mu      sync.Mutex
	entries map[int64]*slip.Entry
	nextID  int64
}

func newFakeSlipRepo() *fakeSlipRepo {
	return &fakeSlipRepo{entries: make(map[int64]*slip.Entry)}
}

func (r *fakeSlipRepo) Create(ctx context.Context, e *slip.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e.ID = r.nextID
	copied := *e
	r.entries[e.ID] = &copied
	return nil
}

func (r *fakeSlipRepo) GetByID(ctx context.Context, id int64) (*slip.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, idb.ErrSlipNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeSlipRepo) UpdateStatus(ctx context.Context, id int64, status slip.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return idb.ErrSlipNotFound
	}
	e.Status = status
	return nil
}

func (r *fakeSlipRepo) ListByBranchAndWeek(ctx context.Context, branchCode, weekLabel string) ([]*slip.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*slip.Entry, 0)
	for _, e := range r.entries {
		if e.BranchCode == branchCode && e.WeekLabel == weekLabel {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSlipRepo) ListByWeek(ctx context.Context, weekLabel string) ([]*slip.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*slip.Entry, 0)
	for _, e := range r.entries {
		if e.WeekLabel == weekLabel {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeChangeReqRepo struct {
	mu       sync.Mutex
	requests map[int64]*changereq.Request
	nextID   int64
}

func newFakeChangeReqRepo() *fakeChangeReqRepo {
	return &fakeChangeReqRepo{requests: make(map[int64]*changereq.Request)}
}

func (r *fakeChangeReqRepo) Create(ctx context.Context, cr *changereq.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cr.ID = r.nextID
	copied := *cr
	r.requests[cr.ID] = &copied
	return nil
}

func (r *fakeChangeReqRepo) GetByID(ctx context.Context, id int64) (*changereq.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cr, ok := r.requests[id]
	if !ok {
		return nil, idb.ErrChangeRequestNotFound
	}
	copied := *cr
	return &copied, nil
}

func (r *fakeChangeReqRepo) ListPending(ctx context.Context) ([]*changereq.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*changereq.Request, 0)
	for _, cr := range r.requests {
		if cr.Status == changereq.StatusPending {
			copied := *cr
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeChangeReqRepo) ListByBranch(ctx context.Context, branchCode string) ([]*changereq.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*changereq.Request, 0)
	for _, cr := range r.requests {
		if cr.BranchCode == branchCode {
			copied := *cr
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeChangeReqRepo) UpdateStatus(ctx context.Context, id int64, status changereq.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cr, ok := r.requests[id]
	if !ok {
		return idb.ErrChangeRequestNotFound
	}
	cr.Status = status
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) NotifyAdmin(text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return nil
}
