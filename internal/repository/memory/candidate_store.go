package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/candidate"
)

type CandidateStore struct {
	mu         sync.RWMutex
	candidates map[common.UUID]candidate.Candidate
}

func NewCandidateStore() *CandidateStore {
	return &CandidateStore{candidates: make(map[common.UUID]candidate.Candidate)}
}

func cloneCandidate(c candidate.Candidate) candidate.Candidate {
	c.Skills = append([]string(nil), c.Skills...)
	return c
}

func (s *CandidateStore) Create(_ context.Context, c candidate.Candidate) (*candidate.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = common.NewUUID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.candidates[c.ID] = cloneCandidate(c)
	return &c, nil
}

func (s *CandidateStore) GetByID(_ context.Context, id common.UUID) (*candidate.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.candidates[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "candidate not found", nil)
	}
	c = cloneCandidate(c)
	return &c, nil
}

func (s *CandidateStore) GetByEmail(_ context.Context, email string) (*candidate.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range s.candidates {
		if strings.EqualFold(c.Email, email) {
			c = cloneCandidate(c)
			return &c, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "candidate not found", nil)
}

func (s *CandidateStore) List(_ context.Context) ([]candidate.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]candidate.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		items = append(items, cloneCandidate(c))
	}
	return items, nil
}
