package memory

import (
	"context"
	"sync"
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/application"
)

// ApplicationStore keeps aggregates in memory so the service can run
// without a database. Aggregates are deep-copied on the way in and out.
type ApplicationStore struct {
	mu   sync.RWMutex
	apps map[common.UUID]*application.JobApplication
}

func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{apps: make(map[common.UUID]*application.JobApplication)}
}

func (s *ApplicationStore) Create(_ context.Context, app application.JobApplication) (*application.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app.ID == common.NilUUID {
		app.ID = common.NewUUID()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
		app.UpdatedAt = app.CreatedAt
	}
	s.apps[app.ID] = app.Clone()
	return app.Clone(), nil
}

func (s *ApplicationStore) GetByID(_ context.Context, id common.UUID) (*application.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return app.Clone(), nil
}

func (s *ApplicationStore) Update(_ context.Context, app *application.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app.ID]; !ok {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	s.apps[app.ID] = app.Clone()
	return nil
}

func (s *ApplicationStore) List(_ context.Context) ([]application.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]application.JobApplication, 0, len(s.apps))
	for _, app := range s.apps {
		items = append(items, *app.Clone())
	}
	return items, nil
}

func (s *ApplicationStore) ListByJob(_ context.Context, jobID common.UUID) ([]application.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []application.JobApplication
	for _, app := range s.apps {
		if app.JobID == jobID {
			items = append(items, *app.Clone())
		}
	}
	return items, nil
}

func (s *ApplicationStore) ListByCandidate(_ context.Context, candidateID common.UUID) ([]application.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []application.JobApplication
	for _, app := range s.apps {
		if app.CandidateID == candidateID {
			items = append(items, *app.Clone())
		}
	}
	return items, nil
}

func (s *ApplicationStore) FindByJobAndCandidate(_ context.Context, jobID, candidateID common.UUID) (*application.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, app := range s.apps {
		if app.JobID == jobID && app.CandidateID == candidateID {
			return app.Clone(), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (s *ApplicationStore) ListWithPendingConfirmation(_ context.Context) ([]application.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []application.JobApplication
	for _, app := range s.apps {
		if app.Confirmation != nil && !app.Confirmation.Resolved() && app.Status == application.StatusActive {
			items = append(items, *app.Clone())
		}
	}
	return items, nil
}
