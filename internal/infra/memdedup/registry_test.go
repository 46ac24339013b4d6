package memdedup

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rider_slip_service/internal/domain/dedup"
	"rider_slip_service/internal/domain/slip"
)

func TestRecordThenSeen(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	fp := slip.ComputeFingerprint([]byte("artifact"))

	seen, err := r.Seen(ctx, "branch:B01:rider:1", fp)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, r.Record(ctx, "branch:B01:rider:1", fp))

	seen, err = r.Seen(ctx, "branch:B01:rider:1", fp)
	require.NoError(t, err)
	assert.True(t, seen)

	err = r.Record(ctx, "branch:B01:rider:1", fp)
	assert.ErrorIs(t, err, dedup.ErrAlreadyRecorded)
}

func TestScopesAreIsolated(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	fp := slip.ComputeFingerprint([]byte("artifact"))

	require.NoError(t, r.Record(ctx, "branch:B01:rider:1", fp))

	seen, err := r.Seen(ctx, "branch:B01:rider:2", fp)
	require.NoError(t, err)
	assert.False(t, seen, "another rider's scope must not see the fingerprint")

	require.NoError(t, r.Record(ctx, "branch:B01:rider:2", fp))
}

func TestConcurrentRecordYieldsOneSuccess(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	fp := slip.ComputeFingerprint([]byte("contended artifact"))

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = r.Record(ctx, "branch:B01:rider:7", fp)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, dedup.ErrAlreadyRecorded)
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent Record must win")
}
