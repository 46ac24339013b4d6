package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rider_slip_service/internal/domain/artifact"
	"rider_slip_service/internal/domain/commission"
	"rider_slip_service/internal/domain/dedup"
	"rider_slip_service/internal/domain/slip"
	"rider_slip_service/internal/infra/memdedup"
)

// Wednesday; the newest open reporting week is 2024-06-03 to 2024-06-09.
var testNow = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

const openWeek = "2024-06-03 to 2024-06-09"

var testRates = commission.RateTable{CashPerSlip: 1000, OnlinePerSlip: 1200}

type fakeStore struct {
	mu     sync.Mutex
	stored map[string][]byte
	fail   bool
	calls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{stored: make(map[string][]byte)}
}

func (f *fakeStore) Store(ctx context.Context, data []byte, scopeHint, filename string) (artifact.StoredRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return "", fmt.Errorf("backend offline")
	}
	ref := scopeHint + "/" + filename
	f.stored[ref] = data
	return artifact.StoredRef(ref), nil
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestService(store artifact.Store, policy dedup.ScopePolicy) (*IntakeService, *memdedup.Registry) {
	registry := memdedup.NewRegistry()
	svc := NewIntakeService(registry, store, testRates, policy, 4, discardLogger())
	svc.now = func() time.Time { return testNow }
	return svc, registry
}

func validRequest() IntakeRequest {
	return IntakeRequest{
		BranchCode:    "B01",
		RiderID:       1,
		Category:      slip.CategoryOnline,
		Quantity:      10,
		TransactionID: "12345678",
		Artifact:      []byte("slip image A"),
		ArtifactName:  "slip.jpg",
		ManagerName:   "Alice",
		WeekLabel:     openWeek,
	}
}

func TestIntakeStagesValidSlip(t *testing.T) {
	store := newFakeStore()
	svc, registry := newTestService(store, dedup.ScopeBranchRider)

	entry, err := svc.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, slip.StatusStaged, entry.Status)
	assert.Equal(t, int64(12000), entry.Commission, "10 slips at the online rate")
	assert.Equal(t, openWeek, entry.WeekLabel)
	assert.Equal(t, testNow, entry.SubmittedAt)
	assert.Equal(t, slip.ComputeFingerprint([]byte("slip image A")), entry.Fingerprint)
	assert.NotEmpty(t, entry.StoredRef)
	assert.Contains(t, store.stored, entry.StoredRef)

	seen, err := registry.Seen(context.Background(), dedup.Scope{BranchCode: "B01", RiderID: 1}.Key(dedup.ScopeBranchRider), entry.Fingerprint)
	require.NoError(t, err)
	assert.True(t, seen, "fingerprint must be recorded under the (branch, rider) scope")
}

func TestIntakeRejectsDuplicateInSameScope(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, dedup.ScopeBranchRider)

	_, err := svc.Intake(context.Background(), validRequest())
	require.NoError(t, err)
	callsAfterFirst := store.calls

	req := validRequest()
	req.TransactionID = "87654321" // identity is the artifact content, not the transaction id
	_, err = svc.Intake(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateArtifact)
	assert.Equal(t, callsAfterFirst, store.calls, "a detected duplicate must not be stored")
}

func TestIntakeAllowsSameArtifactInDifferentScope(t *testing.T) {
	svc, _ := newTestService(newFakeStore(), dedup.ScopeBranchRider)

	_, err := svc.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.RiderID = 2
	_, err = svc.Intake(context.Background(), req)
	assert.NoError(t, err, "same bytes under a different (branch, rider) scope must pass")
}

func TestIntakeGlobalScopeCatchesCrossRiderDuplicate(t *testing.T) {
	svc, _ := newTestService(newFakeStore(), dedup.ScopeGlobal)

	_, err := svc.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.RiderID = 2
	req.BranchCode = "B02"
	_, err = svc.Intake(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateArtifact)
}

func TestIntakeValidationFailures(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, dedup.ScopeBranchRider)
	ctx := context.Background()

	req := validRequest()
	req.Quantity = 0
	_, err := svc.Intake(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	req = validRequest()
	req.TransactionID = "abc"
	_, err = svc.Intake(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidTransactionID)

	req = validRequest()
	req.Category = slip.CategoryCash
	req.TransactionID = ""
	_, err = svc.Intake(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidTransactionID)

	req = validRequest()
	req.Artifact = nil
	_, err = svc.Intake(ctx, req)
	assert.ErrorIs(t, err, ErrMissingArtifact)

	req = validRequest()
	req.WeekLabel = "2023-01-02 to 2023-01-08" // long closed
	_, err = svc.Intake(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidWeek)

	assert.Zero(t, store.calls, "validation failures must never reach the artifact store")
}

func TestIntakeResolvesWeekFromDate(t *testing.T) {
	svc, _ := newTestService(newFakeStore(), dedup.ScopeBranchRider)

	req := validRequest()
	req.WeekLabel = ""
	req.WeekOf = time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)

	entry, err := svc.Intake(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, openWeek, entry.WeekLabel)
}

func TestIntakeStorageFailureKeepsRegistryClean(t *testing.T) {
	store := newFakeStore()
	store.fail = true
	svc, registry := newTestService(store, dedup.ScopeBranchRider)

	_, err := svc.Intake(context.Background(), validRequest())

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)

	fp := slip.ComputeFingerprint([]byte("slip image A"))
	seen, seenErr := registry.Seen(context.Background(), dedup.Scope{BranchCode: "B01", RiderID: 1}.Key(dedup.ScopeBranchRider), fp)
	require.NoError(t, seenErr)
	assert.False(t, seen, "a fingerprint must never be recorded for an artifact that failed to persist")

	// The failure is transient; a retry succeeds.
	store.fail = false
	_, err = svc.Intake(context.Background(), validRequest())
	assert.NoError(t, err)
}

// lostRaceRegistry simulates losing the check-and-insert race: the initial
// membership check misses, but the insert finds the pair already present.
type lostRaceRegistry struct{}

func (lostRaceRegistry) Seen(ctx context.Context, scopeKey string, fp slip.Fingerprint) (bool, error) {
	return false, nil
}

func (lostRaceRegistry) Record(ctx context.Context, scopeKey string, fp slip.Fingerprint) error {
	return dedup.ErrAlreadyRecorded
}

func TestIntakeLostRaceReportsDuplicate(t *testing.T) {
	store := newFakeStore()
	svc := NewIntakeService(lostRaceRegistry{}, store, testRates, dedup.ScopeBranchRider, 4, discardLogger())
	svc.now = func() time.Time { return testNow }

	_, err := svc.Intake(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateArtifact)
	assert.Equal(t, 1, store.calls, "the artifact was stored before the race was lost")
}

type failingRegistry struct{}

func (failingRegistry) Seen(ctx context.Context, scopeKey string, fp slip.Fingerprint) (bool, error) {
	return false, fmt.Errorf("registry backend down")
}

func (failingRegistry) Record(ctx context.Context, scopeKey string, fp slip.Fingerprint) error {
	return fmt.Errorf("registry backend down")
}

func TestIntakeRegistryFailureIsTyped(t *testing.T) {
	svc := NewIntakeService(failingRegistry{}, newFakeStore(), testRates, dedup.ScopeBranchRider, 4, discardLogger())
	svc.now = func() time.Time { return testNow }

	_, err := svc.Intake(context.Background(), validRequest())

	var registryErr *RegistryError
	assert.ErrorAs(t, err, &registryErr)
}

func TestConcurrentIntakeOfIdenticalArtifact(t *testing.T) {
	svc, _ := newTestService(newFakeStore(), dedup.ScopeBranchRider)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Intake(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	successes, duplicates := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		default:
			assert.ErrorIs(t, err, ErrDuplicateArtifact)
			duplicates++
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent submission must stage")
	assert.Equal(t, 1, duplicates)
}

func TestCommissionPreview(t *testing.T) {
	svc, _ := newTestService(newFakeStore(), dedup.ScopeBranchRider)

	amount, err := svc.CommissionPreview(slip.CategoryCash, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), amount)

	_, err = svc.CommissionPreview(slip.CategoryCash, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRecentWeeksWindow(t *testing.T) {
	svc, _ := newTestService(newFakeStore(), dedup.ScopeBranchRider)

	weeks := svc.RecentWeeks()
	require.Len(t, weeks, 4)
	assert.Equal(t, openWeek, weeks[len(weeks)-1].Label())
}

func TestSeenArtifactQuery(t *testing.T) {
	svc, _ := newTestService(newFakeStore(), dedup.ScopeBranchRider)
	ctx := context.Background()

	seen, err := svc.SeenArtifact(ctx, "B01", 1, []byte("slip image A"))
	require.NoError(t, err)
	assert.False(t, seen)

	_, err = svc.Intake(ctx, validRequest())
	require.NoError(t, err)

	seen, err = svc.SeenArtifact(ctx, "B01", 1, []byte("slip image A"))
	require.NoError(t, err)
	assert.True(t, seen)
}
