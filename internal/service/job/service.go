package job

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vgc-platform/admin-api/internal/model"
	"github.com/vgc-platform/admin-api/internal/repository"
)

type Service struct {
	repo repository.AppliedJobRepository
}

func NewService(repo repository.AppliedJobRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAppliedJobs(ctx context.Context) ([]*model.AppliedJob, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied jobs: %w", err)
	}
	return jobs, nil
}

func (s *Service) GetAppliedJob(ctx context.Context, id uuid.UUID) (*model.AppliedJob, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied job: %w", err)
	}
	return job, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppliedJobStatus) (*model.AppliedJob, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied job: %w", err)
	}

	// Accepted and rejected applications are final.
	if job.Status == model.AppliedJobStatusAccepted || job.Status == model.AppliedJobStatusRejected {
		return nil, fmt.Errorf("application already decided")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	job.Status = status
	return job, nil
}
