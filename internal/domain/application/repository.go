package application

import (
	"context"

	"talentdesk/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app JobApplication) (*JobApplication, error)
	GetByID(ctx context.Context, id common.UUID) (*JobApplication, error)
	Update(ctx context.Context, app *JobApplication) error
	List(ctx context.Context) ([]JobApplication, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]JobApplication, error)
	ListByCandidate(ctx context.Context, candidateID common.UUID) ([]JobApplication, error)
	FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*JobApplication, error)
	ListWithPendingConfirmation(ctx context.Context) ([]JobApplication, error)
}
