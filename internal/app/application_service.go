package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/application"
	"talentdesk/internal/domain/candidate"
	"talentdesk/internal/domain/job"
	"talentdesk/internal/email"
	"talentdesk/internal/pipeline"
)

type ApplicationService struct {
	repo       application.Repository
	jobs       job.Repository
	candidates candidate.Repository
	engine     *pipeline.Engine
	sink       pipeline.Sink
	mailer     *email.Service
	logger     *slog.Logger
	locks      *keyedMutex
	clock      func() time.Time
}

func NewApplicationService(repo application.Repository, jobs job.Repository, candidates candidate.Repository, engine *pipeline.Engine, sink pipeline.Sink, mailer *email.Service, logger *slog.Logger) *ApplicationService {
	if sink == nil {
		sink = pipeline.NopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationService{
		repo:       repo,
		jobs:       jobs,
		candidates: candidates,
		engine:     engine,
		sink:       sink,
		mailer:     mailer,
		logger:     logger,
		locks:      newKeyedMutex(),
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ApplicationService) Apply(ctx context.Context, jobID, candidateID common.UUID) (*application.JobApplication, error) {
	cand, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusPublished {
		return nil, common.NewError(common.CodeValidation, "job is not published", nil)
	}
	if _, err := s.repo.FindByJobAndCandidate(ctx, jobID, candidateID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	app := application.New(cand.ID, j.ID, s.clock())
	created, err := s.repo.Create(ctx, *app)
	if err != nil {
		return nil, err
	}
	s.publish([]pipeline.Event{{
		Type:          pipeline.EventStageChanged,
		ApplicationID: created.ID,
		To:            application.StageApplied,
		At:            created.CreatedAt,
	}})
	return created, nil
}

// UpdateStage moves the application forward. The state update is applied
// and persisted first; mail is dispatched after and only flips mail_sent
// on success, so delivery failures never block the transition.
func (s *ApplicationService) UpdateStage(ctx context.Context, id common.UUID, target application.Stage, actor, note string) (*application.JobApplication, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	events, err := s.engine.RequestTransition(app, target, actor, now, false)
	if err != nil {
		return nil, translateEngineErr(err)
	}
	if note != "" {
		app.LastEntry().Reason = note
	}

	if s.mailer != nil && email.HasTemplate(target) {
		if sent := s.sendStageMail(ctx, app, target); sent {
			app.LastEntry().MailSent = true
		}
	}

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	s.publish(events)
	return app, nil
}

func (s *ApplicationService) sendStageMail(ctx context.Context, app *application.JobApplication, target application.Stage) bool {
	cand, err := s.candidates.GetByID(ctx, app.CandidateID)
	if err != nil {
		s.logger.Warn("stage mail skipped: candidate lookup failed",
			slog.String("application_id", app.ID.String()), slog.String("error", err.Error()))
		return false
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		s.logger.Warn("stage mail skipped: job lookup failed",
			slog.String("application_id", app.ID.String()), slog.String("error", err.Error()))
		return false
	}
	sent, err := s.mailer.SendStageMail(ctx, app, cand, j, target)
	if err != nil {
		s.logger.Warn("stage mail dispatch failed",
			slog.String("application_id", app.ID.String()), slog.String("error", err.Error()))
		return false
	}
	return sent
}

// RespondConfirmation records the candidate's answer. A response on an
// already resolved confirmation is a no-op, not an error.
func (s *ApplicationService) RespondConfirmation(ctx context.Context, id common.UUID, accepted bool) (*application.JobApplication, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	changed, err := s.engine.RespondConfirmation(app, accepted, s.clock())
	if err != nil {
		return nil, translateEngineErr(err)
	}
	if changed {
		if err := s.repo.Update(ctx, app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// AcknowledgeMail marks the transition mail on the current stage as
// acknowledged by the candidate.
func (s *ApplicationService) AcknowledgeMail(ctx context.Context, id common.UUID) (*application.JobApplication, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	last := app.LastEntry()
	if last == nil {
		return nil, common.NewError(common.CodeInternal, "corrupted stage history", nil)
	}
	if !last.MailSent {
		return nil, common.NewError(common.CodeValidation, "no mail was sent for the current stage", nil)
	}
	if !last.MailConfirmed {
		last.MailConfirmed = true
		app.UpdatedAt = s.clock()
		if err := s.repo.Update(ctx, app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Get returns the aggregate, lazily applying the overdue rule first so a
// read never shows a pending confirmation that policy already killed. The
// periodic sweeper covers applications nobody reads.
func (s *ApplicationService) Get(ctx context.Context, id common.UUID) (*application.JobApplication, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	events, changed, err := s.engine.Sweep(app, s.clock())
	if err != nil {
		return nil, translateEngineErr(err)
	}
	if changed {
		if err := s.repo.Update(ctx, app); err != nil {
			return nil, err
		}
		s.publish(events)
	}
	return app, nil
}

func (s *ApplicationService) List(ctx context.Context) ([]application.JobApplication, error) {
	return s.repo.List(ctx)
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID common.UUID) ([]application.JobApplication, error) {
	return s.repo.ListByJob(ctx, jobID)
}

func (s *ApplicationService) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.JobApplication, error) {
	return s.repo.ListByCandidate(ctx, candidateID)
}

// SetStatus handles the non-stage lifecycle: hold, resume, withdraw.
func (s *ApplicationService) SetStatus(ctx context.Context, id common.UUID, status application.Status) (*application.JobApplication, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !statusChangeAllowed(app.Status, status) {
		return nil, common.NewError(common.CodeValidation, "invalid status change", nil)
	}
	app.Status = status
	app.UpdatedAt = s.clock()
	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func statusChangeAllowed(from, to application.Status) bool {
	switch from {
	case application.StatusActive:
		return to == application.StatusOnHold || to == application.StatusWithdrawn
	case application.StatusOnHold:
		return to == application.StatusActive || to == application.StatusWithdrawn
	default:
		return false
	}
}

// SweepAll is one sweeper pass: every active application with a pending
// confirmation gets the overdue rule applied. Per-application failures are
// logged and skipped so one bad row never aborts the batch.
func (s *ApplicationService) SweepAll(ctx context.Context) (int, error) {
	apps, err := s.repo.ListWithPendingConfirmation(ctx)
	if err != nil {
		return 0, err
	}
	rejected := 0
	for i := range apps {
		if apps[i].Status != application.StatusActive {
			continue
		}
		rejected += s.sweepOne(ctx, apps[i].ID)
	}
	return rejected, nil
}

func (s *ApplicationService) sweepOne(ctx context.Context, id common.UUID) int {
	unlock := s.locks.lock(id)
	defer unlock()

	// Reload under the lock: the listing snapshot may be stale by the time
	// this application's turn comes up.
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("sweep load failed",
			slog.String("application_id", id.String()), slog.String("error", err.Error()))
		return 0
	}
	events, changed, err := s.engine.Sweep(app, s.clock())
	if err != nil {
		s.logger.Error("sweep failed for application",
			slog.String("application_id", app.ID.String()), slog.String("error", err.Error()))
		return 0
	}
	if !changed {
		return 0
	}
	if err := s.repo.Update(ctx, app); err != nil {
		s.logger.Error("sweep persist failed",
			slog.String("application_id", app.ID.String()), slog.String("error", err.Error()))
		return 0
	}
	s.publish(events)
	return 1
}

// StageTracker derives the current stage's entry snapshot: when it was
// entered and when its policy deadline lapses.
func (s *ApplicationService) StageTracker(app *application.JobApplication) pipeline.StageTracker {
	entered := app.UpdatedAt
	if last := app.LastEntry(); last != nil {
		entered = last.StartedAt
	}
	return pipeline.EnterStage(app.CurrentStage, entered, s.engine.Policy())
}

func (s *ApplicationService) publish(events []pipeline.Event) {
	for _, event := range events {
		s.sink.Publish(event)
	}
}

func translateEngineErr(err error) error {
	switch {
	case errors.Is(err, pipeline.ErrUnknownStage):
		return common.NewError(common.CodeValidation, "unknown stage", err)
	case errors.Is(err, pipeline.ErrIllegalTransition):
		return common.NewError(common.CodeValidation, "illegal stage transition", err)
	case errors.Is(err, pipeline.ErrNoConfirmation):
		return common.NewError(common.CodeValidation, "no confirmation requested", err)
	case errors.Is(err, pipeline.ErrInvariantViolation):
		return common.NewError(common.CodeInternal, "corrupted stage history", err)
	default:
		return err
	}
}
