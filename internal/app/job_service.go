package app

import (
	"context"
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/job"
)

type JobService struct {
	repo  job.Repository
	clock func() time.Time
}

func NewJobService(repo job.Repository) *JobService {
	return &JobService{repo: repo, clock: func() time.Time { return time.Now().UTC() }}
}

func (s *JobService) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	if j.Title == "" {
		return nil, common.NewError(common.CodeValidation, "title is required", nil)
	}
	if j.Description == "" {
		return nil, common.NewError(common.CodeValidation, "description is required", nil)
	}
	if len(j.Requirements) == 0 {
		return nil, common.NewError(common.CodeValidation, "requirements are required", nil)
	}
	if j.Status == "" {
		j.Status = job.StatusDraft
	}
	if err := validateJobStatus(j.Status); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, j)
}

func (s *JobService) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	current, err := s.repo.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if j.Status == "" {
		j.Status = current.Status
	}
	if err := validateJobStatus(j.Status); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, j)
}

func (s *JobService) UpdateStatus(ctx context.Context, id common.UUID, status job.Status) (*job.Job, error) {
	if err := validateJobStatus(status); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == job.StatusClosed {
		return nil, common.NewError(common.CodeValidation, "job is closed", nil)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) List(ctx context.Context) ([]job.Job, error) {
	return s.repo.List(ctx)
}

func (s *JobService) ListPublished(ctx context.Context) ([]job.Job, error) {
	return s.repo.ListPublished(ctx)
}

func validateJobStatus(status job.Status) error {
	switch status {
	case job.StatusDraft, job.StatusPublished, job.StatusClosed:
		return nil
	default:
		return common.NewValidationError("invalid status", map[string]string{"status": "status must be draft, published, or closed"})
	}
}
