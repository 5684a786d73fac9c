package app

import (
	"context"
	"strings"
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/candidate"
)

type CandidateService struct {
	repo  candidate.Repository
	clock func() time.Time
}

func NewCandidateService(repo candidate.Repository) *CandidateService {
	return &CandidateService{repo: repo, clock: func() time.Time { return time.Now().UTC() }}
}

func (s *CandidateService) Create(ctx context.Context, c candidate.Candidate) (*candidate.Candidate, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Name == "" {
		return nil, common.NewError(common.CodeValidation, "name is required", nil)
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return nil, common.NewValidationError("invalid email", map[string]string{"email": "a valid email is required"})
	}
	if _, err := s.repo.GetByEmail(ctx, c.Email); err == nil {
		return nil, common.NewError(common.CodeConflict, "candidate already exists", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

func (s *CandidateService) Get(ctx context.Context, id common.UUID) (*candidate.Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CandidateService) List(ctx context.Context) ([]candidate.Candidate, error) {
	return s.repo.List(ctx)
}
