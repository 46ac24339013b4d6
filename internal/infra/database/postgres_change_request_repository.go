package database

import (
	"context"
	"database/sql"
	"fmt"

	"rider_slip_service/internal/domain/changereq"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var ErrChangeRequestNotFound = fmt.Errorf("change request not found")

type PostgresChangeRequestRepository struct {
	db *sql.DB
}

func NewPostgresChangeRequestRepository(db *sql.DB) *PostgresChangeRequestRepository {
	return &PostgresChangeRequestRepository{db: db}
}

func (r *PostgresChangeRequestRepository) Create(ctx context.Context, cr *changereq.Request) error {
	query := `INSERT INTO change_requests (branch_code, submitted_by, message, status)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, cr.BranchCode, cr.SubmittedBy, cr.Message, string(cr.Status)).
		Scan(&cr.ID, &cr.CreatedAt, &cr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating change request: %w", err)
	}
	return nil
}

func (r *PostgresChangeRequestRepository) GetByID(ctx context.Context, id int64) (*changereq.Request, error) {
	query := `SELECT id, branch_code, submitted_by, message, status, created_at, updated_at
               FROM change_requests WHERE id = $1`
	cr := &changereq.Request{}
	var status string
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&cr.ID, &cr.BranchCode, &cr.SubmittedBy, &cr.Message, &status, &cr.CreatedAt, &cr.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrChangeRequestNotFound
		}
		return nil, fmt.Errorf("error getting change request by ID: %w", err)
	}
	cr.Status = changereq.Status(status)
	return cr, nil
}

func (r *PostgresChangeRequestRepository) ListPending(ctx context.Context) ([]*changereq.Request, error) {
	query := `SELECT id, branch_code, submitted_by, message, status, created_at, updated_at
               FROM change_requests WHERE status = $1 ORDER BY created_at`
	return r.list(ctx, query, string(changereq.StatusPending))
}

func (r *PostgresChangeRequestRepository) ListByBranch(ctx context.Context, branchCode string) ([]*changereq.Request, error) {
	query := `SELECT id, branch_code, submitted_by, message, status, created_at, updated_at
               FROM change_requests WHERE branch_code = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, branchCode)
}

func (r *PostgresChangeRequestRepository) UpdateStatus(ctx context.Context, id int64, status changereq.Status) error {
	query := `UPDATE change_requests SET status = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("error updating change request status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking change request update: %w", err)
	}
	if affected == 0 {
		return ErrChangeRequestNotFound
	}
	return nil
}

func (r *PostgresChangeRequestRepository) list(ctx context.Context, query string, arg any) ([]*changereq.Request, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("error listing change requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*changereq.Request, 0)
	for rows.Next() {
		cr := &changereq.Request{}
		var status string
		if err := rows.Scan(&cr.ID, &cr.BranchCode, &cr.SubmittedBy, &cr.Message, &status, &cr.CreatedAt, &cr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning change request: %w", err)
		}
		cr.Status = changereq.Status(status)
		requests = append(requests, cr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change requests: %w", err)
	}
	return requests, nil
}
