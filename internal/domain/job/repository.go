package job

import (
	"context"

	"talentdesk/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	List(ctx context.Context) ([]Job, error)
	ListPublished(ctx context.Context) ([]Job, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Job, error)
}
