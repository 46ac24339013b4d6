package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreWritesAndReturnsRelativeRef(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)

	ref, err := store.Store(context.Background(), []byte("image bytes"), "B01/1", "abc123.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("B01", "1", "abc123.jpg"), string(ref))

	data, err := os.ReadFile(filepath.Join(dir, string(ref)))
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)
}

func TestDiskStoreIsSafeToRetry(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)
	ctx := context.Background()

	first, err := store.Store(ctx, []byte("same bytes"), "B01/1", "abc123.jpg")
	require.NoError(t, err)
	second, err := store.Store(ctx, []byte("same bytes"), "B01/1", "abc123.jpg")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDiskStoreHonorsCancelledContext(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Store(ctx, []byte("bytes"), "B01/1", "abc123.jpg")
	assert.Error(t, err)
}
