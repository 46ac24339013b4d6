package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"rider_slip_service/internal/domain/branch"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrBranchNotFound = fmt.Errorf("branch not found")
var ErrRiderNotFound = fmt.Errorf("rider not found")
var ErrDuplicateBranchCode = fmt.Errorf("branch with this code already exists")

type PostgresBranchRepository struct {
	db *sql.DB
}

func NewPostgresBranchRepository(db *sql.DB) *PostgresBranchRepository {
	return &PostgresBranchRepository{db: db}
}

func (r *PostgresBranchRepository) Create(ctx context.Context, b *branch.Branch) error {
	query := `INSERT INTO branches (code, name)
               VALUES ($1, $2)
               RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, b.Code, b.Name).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") && strings.Contains(err.Error(), "branches_pkey") {
			return ErrDuplicateBranchCode
		}
		return fmt.Errorf("error creating branch: %w", err)
	}
	return nil
}

func (r *PostgresBranchRepository) GetByCode(ctx context.Context, code string) (*branch.Branch, error) {
	query := `SELECT code, name, created_at, updated_at FROM branches WHERE code = $1`
	b := &branch.Branch{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(&b.Code, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("error getting branch by code: %w", err)
	}
	return b, nil
}

func (r *PostgresBranchRepository) ListAll(ctx context.Context) ([]*branch.Branch, error) {
	query := `SELECT code, name, created_at, updated_at FROM branches ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing branches: %w", err)
	}
	defer rows.Close()

	branches := make([]*branch.Branch, 0)
	for rows.Next() {
		b := &branch.Branch{}
		if err := rows.Scan(&b.Code, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning branch: %w", err)
		}
		branches = append(branches, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branches: %w", err)
	}
	return branches, nil
}

func (r *PostgresBranchRepository) AddRider(ctx context.Context, rd *branch.Rider) error {
	query := `INSERT INTO riders (branch_code, name, is_active)
               VALUES ($1, $2, $3)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, rd.BranchCode, rd.Name, rd.IsActive).Scan(&rd.ID, &rd.CreatedAt, &rd.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key constraint") {
			return ErrBranchNotFound
		}
		return fmt.Errorf("error adding rider: %w", err)
	}
	return nil
}

func (r *PostgresBranchRepository) GetRiderByID(ctx context.Context, id int64) (*branch.Rider, error) {
	query := `SELECT id, branch_code, name, is_active, created_at, updated_at
               FROM riders WHERE id = $1`
	rd := &branch.Rider{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rd.ID, &rd.BranchCode, &rd.Name, &rd.IsActive, &rd.CreatedAt, &rd.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRiderNotFound
		}
		return nil, fmt.Errorf("error getting rider by ID: %w", err)
	}
	return rd, nil
}

func (r *PostgresBranchRepository) ListRiders(ctx context.Context, branchCode string) ([]*branch.Rider, error) {
	query := `SELECT id, branch_code, name, is_active, created_at, updated_at
               FROM riders WHERE branch_code = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, branchCode)
	if err != nil {
		return nil, fmt.Errorf("error listing riders: %w", err)
	}
	defer rows.Close()

	riders := make([]*branch.Rider, 0)
	for rows.Next() {
		rd := &branch.Rider{}
		if err := rows.Scan(&rd.ID, &rd.BranchCode, &rd.Name, &rd.IsActive, &rd.CreatedAt, &rd.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning rider: %w", err)
		}
		riders = append(riders, rd)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating riders: %w", err)
	}
	return riders, nil
}
