package database

import (
	"context"
	"database/sql"
	"fmt"

	"rider_slip_service/internal/domain/slip"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var ErrSlipNotFound = fmt.Errorf("slip not found")

type PostgresSlipRepository struct {
	db *sql.DB
}

func NewPostgresSlipRepository(db *sql.DB) *PostgresSlipRepository {
	return &PostgresSlipRepository{db: db}
}

func (r *PostgresSlipRepository) Create(ctx context.Context, e *slip.Entry) error {
	query := `INSERT INTO slips
               (branch_code, rider_id, category, quantity, transaction_id,
                fingerprint, stored_ref, manager_name, week_label, commission,
                status, submitted_at)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		e.BranchCode, e.RiderID, string(e.Category), e.Quantity, e.TransactionID,
		e.Fingerprint.Hex(), e.StoredRef, e.ManagerName, e.WeekLabel, e.Commission,
		string(e.Status), e.SubmittedAt,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating slip: %w", err)
	}
	return nil
}

func (r *PostgresSlipRepository) GetByID(ctx context.Context, id int64) (*slip.Entry, error) {
	query := selectSlipColumns + ` FROM slips WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	e, err := scanSlip(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSlipNotFound
		}
		return nil, fmt.Errorf("error getting slip by ID: %w", err)
	}
	return e, nil
}

func (r *PostgresSlipRepository) UpdateStatus(ctx context.Context, id int64, status slip.Status) error {
	query := `UPDATE slips SET status = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("error updating slip status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking slip status update: %w", err)
	}
	if affected == 0 {
		return ErrSlipNotFound
	}
	return nil
}

func (r *PostgresSlipRepository) ListByBranchAndWeek(ctx context.Context, branchCode, weekLabel string) ([]*slip.Entry, error) {
	query := selectSlipColumns + ` FROM slips WHERE branch_code = $1 AND week_label = $2 ORDER BY submitted_at`
	rows, err := r.db.QueryContext(ctx, query, branchCode, weekLabel)
	if err != nil {
		return nil, fmt.Errorf("error listing slips by branch and week: %w", err)
	}
	defer rows.Close()
	return collectSlips(rows)
}

func (r *PostgresSlipRepository) ListByWeek(ctx context.Context, weekLabel string) ([]*slip.Entry, error) {
	query := selectSlipColumns + ` FROM slips WHERE week_label = $1 ORDER BY branch_code, submitted_at`
	rows, err := r.db.QueryContext(ctx, query, weekLabel)
	if err != nil {
		return nil, fmt.Errorf("error listing slips by week: %w", err)
	}
	defer rows.Close()
	return collectSlips(rows)
}

const selectSlipColumns = `SELECT id, branch_code, rider_id, category, quantity,
       transaction_id, fingerprint, stored_ref, manager_name, week_label,
       commission, status, submitted_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlip(row rowScanner) (*slip.Entry, error) {
	e := &slip.Entry{}
	var category, status, fingerprintHex string
	err := row.Scan(&e.ID, &e.BranchCode, &e.RiderID, &category, &e.Quantity,
		&e.TransactionID, &fingerprintHex, &e.StoredRef, &e.ManagerName, &e.WeekLabel,
		&e.Commission, &status, &e.SubmittedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Category = slip.Category(category)
	e.Status = slip.Status(status)
	e.Fingerprint, err = slip.ParseFingerprint(fingerprintHex)
	if err != nil {
		return nil, fmt.Errorf("error decoding slip fingerprint: %w", err)
	}
	return e, nil
}

func collectSlips(rows *sql.Rows) ([]*slip.Entry, error) {
	entries := make([]*slip.Entry, 0)
	for rows.Next() {
		e, err := scanSlip(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning slip: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slips: %w", err)
	}
	return entries, nil
}
