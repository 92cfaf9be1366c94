package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vgc-platform/admin-api/internal/model"
	"github.com/vgc-platform/admin-api/internal/repository"
)

type appliedJobRepository struct {
	BaseRepository
}

func NewAppliedJobRepository(db *sqlx.DB) repository.AppliedJobRepository {
	return &appliedJobRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *appliedJobRepository) Get(ctx context.Context, id uuid.UUID) (*model.AppliedJob, error) {
	query := `
		SELECT id, ad_id, job_title, business_name, status,
			   applicant_id, applicant_email, applied_at, updated_at
		FROM applied_jobs
		WHERE id = $1
	`
	var job model.AppliedJob
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, fmt.Errorf("failed to get applied job: %w", err)
	}
	return &job, nil
}

func (r *appliedJobRepository) List(ctx context.Context) ([]*model.AppliedJob, error) {
	query := `
		SELECT id, ad_id, job_title, business_name, status,
			   applicant_id, applicant_email, applied_at, updated_at
		FROM applied_jobs
		ORDER BY applied_at DESC
	`
	var jobs []*model.AppliedJob
	if err := r.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("failed to list applied jobs: %w", err)
	}
	return jobs, nil
}

func (r *appliedJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppliedJobStatus) error {
	query := `UPDATE applied_jobs SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update applied job status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("applied job not found")
	}
	return nil
}
