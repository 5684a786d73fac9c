package memory

import (
	"context"
	"sync"
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/job"
)

type JobStore struct {
	mu   sync.RWMutex
	jobs map[common.UUID]job.Job
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[common.UUID]job.Job)}
}

func cloneJob(j job.Job) job.Job {
	j.Requirements = append([]string(nil), j.Requirements...)
	return j
}

func (s *JobStore) Create(_ context.Context, j job.Job) (*job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	s.jobs[j.ID] = cloneJob(j)
	return &j, nil
}

func (s *JobStore) Update(_ context.Context, j job.Job) (*job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.jobs[j.ID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.CreatedAt = current.CreatedAt
	j.UpdatedAt = time.Now().UTC()
	s.jobs[j.ID] = cloneJob(j)
	return &j, nil
}

func (s *JobStore) GetByID(_ context.Context, id common.UUID) (*job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j = cloneJob(j)
	return &j, nil
}

func (s *JobStore) List(_ context.Context) ([]job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]job.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		items = append(items, cloneJob(j))
	}
	return items, nil
}

func (s *JobStore) ListPublished(_ context.Context) ([]job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []job.Job
	for _, j := range s.jobs {
		if j.Status == job.StatusPublished {
			items = append(items, cloneJob(j))
		}
	}
	return items, nil
}

func (s *JobStore) UpdateStatus(_ context.Context, id common.UUID, status job.Status) (*job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.Status = status
	j.UpdatedAt = time.Now().UTC()
	s.jobs[id] = j
	j = cloneJob(j)
	return &j, nil
}
