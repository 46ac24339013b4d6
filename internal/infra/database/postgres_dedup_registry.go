package database

import (
	"context"
	"database/sql"
	"fmt"

	"rider_slip_service/internal/domain/dedup"
	"rider_slip_service/internal/domain/slip"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresDedupRegistry implements dedup.Registry on the slip_fingerprints
// table. The unique index on (scope_key, fingerprint) plus
// ON CONFLICT DO NOTHING makes Record an atomic check-and-insert: of two
// concurrent identical inserts, exactly one reports a row affected.
type PostgresDedupRegistry struct {
	db *sql.DB
}

func NewPostgresDedupRegistry(db *sql.DB) *PostgresDedupRegistry {
	return &PostgresDedupRegistry{db: db}
}

func (r *PostgresDedupRegistry) Seen(ctx context.Context, scopeKey string, fp slip.Fingerprint) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM slip_fingerprints WHERE scope_key = $1 AND fingerprint = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, scopeKey, fp.Hex()).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking fingerprint: %w", err)
	}
	return exists, nil
}

func (r *PostgresDedupRegistry) Record(ctx context.Context, scopeKey string, fp slip.Fingerprint) error {
	query := `INSERT INTO slip_fingerprints (scope_key, fingerprint)
               VALUES ($1, $2)
               ON CONFLICT (scope_key, fingerprint) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, scopeKey, fp.Hex())
	if err != nil {
		return fmt.Errorf("error recording fingerprint: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking fingerprint insert: %w", err)
	}
	if affected == 0 {
		return dedup.ErrAlreadyRecorded
	}
	return nil
}
