// Package storage provides a filesystem-backed artifact store.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"rider_slip_service/internal/domain/artifact"
)

// DiskStore persists artifacts under baseDir/<scopeHint>/<filename>.
// The returned reference is the path relative to baseDir. Rewriting the same
// path with identical bytes is harmless, so retries are safe.
type DiskStore struct {
	baseDir string
}

func NewDiskStore(baseDir string) *DiskStore {
	return &DiskStore{baseDir: baseDir}
}

func (s *DiskStore) Store(ctx context.Context, data []byte, scopeHint, filename string) (artifact.StoredRef, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Join(s.baseDir, filepath.Clean(scopeHint))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating artifact directory: %w", err)
	}
	rel := filepath.Join(filepath.Clean(scopeHint), filepath.Base(filename))
	if err := os.WriteFile(filepath.Join(s.baseDir, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("error writing artifact: %w", err)
	}
	return artifact.StoredRef(rel), nil
}
