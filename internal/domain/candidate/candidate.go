package candidate

import (
	"context"
	"time"

	"talentdesk/internal/common"
)

type Candidate struct {
	ID        common.UUID `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	Skills    []string    `json:"skills,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type Repository interface {
	Create(ctx context.Context, c Candidate) (*Candidate, error)
	GetByID(ctx context.Context, id common.UUID) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	List(ctx context.Context) ([]Candidate, error)
}
