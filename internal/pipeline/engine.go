package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"talentdesk/internal/domain/application"
)

var ErrNoConfirmation = errors.New("no confirmation requested")

// AutoRejectReason is appended to the history entry written by the
// forced-rejection path.
const AutoRejectReason = "auto-rejected: confirmation deadline passed"

const systemActor = "system"

// Engine is the single entry point for moving an application between
// stages. It is stateless: callers load the aggregate, invoke one
// operation with an explicit clock, and persist the result.
type Engine struct {
	policy *Policy
}

func NewEngine(policy *Policy) *Engine {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Engine{policy: policy}
}

func (e *Engine) Policy() *Policy {
	return e.policy
}

// RequestTransition validates and applies a forward transition. On error the
// aggregate is untouched. The returned events carry the stage change and, if
// the target stage requires it, the new confirmation request.
func (e *Engine) RequestTransition(app *application.JobApplication, target application.Stage, actor string, now time.Time, emailSent bool) ([]Event, error) {
	if !KnownStage(target) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, target)
	}
	last := app.LastEntry()
	if last == nil {
		return nil, fmt.Errorf("%w: empty stage history for application %s", ErrInvariantViolation, app.ID)
	}
	from := app.CurrentStage
	if !IsForwardTransition(from, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, target)
	}

	ended := now
	last.EndedAt = &ended
	app.StageHistory = append(app.StageHistory, application.StageHistoryEntry{
		Stage:     target,
		StartedAt: now,
		ActorID:   actor,
		MailSent:  emailSent,
	})
	app.CurrentStage = target
	app.UpdatedAt = now
	if TerminalStage(target) {
		app.Status = application.StatusCompleted
	}

	events := []Event{{
		Type:          EventStageChanged,
		ApplicationID: app.ID,
		From:          from,
		To:            target,
		At:            now,
	}}

	rule := e.policy.Rule(target)
	if rule.RequiresConfirmation {
		conf := application.NewConfirmation(strings.ToLower(string(target)), now, rule.DeadlineDays)
		app.Confirmation = conf
		events = append(events, Event{
			Type:          EventConfirmationRequired,
			ApplicationID: app.ID,
			To:            target,
			Deadline:      &conf.Deadline,
			At:            now,
		})
	} else {
		app.Confirmation = nil
	}

	return events, nil
}

// RespondConfirmation records the candidate's answer. Answers to an already
// resolved confirmation are idempotent no-ops.
func (e *Engine) RespondConfirmation(app *application.JobApplication, accepted bool, now time.Time) (bool, error) {
	if app.Confirmation == nil {
		return false, fmt.Errorf("%w: application %s", ErrNoConfirmation, app.ID)
	}
	changed := app.Confirmation.Respond(accepted, now)
	if changed {
		app.UpdatedAt = now
	}
	return changed, nil
}

// Sweep applies the overdue rule to a pending confirmation. It is a no-op
// on resolved confirmations and on pending ones still inside their deadline,
// so repeated sweeps converge. When the stage policy auto-rejects, the
// application is forced to rejected with exactly one history entry.
func (e *Engine) Sweep(app *application.JobApplication, now time.Time) ([]Event, bool, error) {
	conf := app.Confirmation
	if conf == nil || conf.Resolved() {
		return nil, false, nil
	}
	if !conf.Overdue(now) {
		return nil, false, nil
	}
	rule := e.policy.Rule(app.CurrentStage)
	if !rule.AutoRejectOnOverdue {
		return nil, false, nil
	}
	last := app.LastEntry()
	if last == nil {
		return nil, false, fmt.Errorf("%w: empty stage history for application %s", ErrInvariantViolation, app.ID)
	}
	if !conf.AutoReject(now) {
		return nil, false, nil
	}

	from := app.CurrentStage
	ended := now
	last.EndedAt = &ended
	app.StageHistory = append(app.StageHistory, application.StageHistoryEntry{
		Stage:     application.StageRejected,
		StartedAt: now,
		Reason:    AutoRejectReason,
		ActorID:   systemActor,
	})
	app.CurrentStage = application.StageRejected
	app.Status = application.StatusCompleted
	app.UpdatedAt = now

	events := []Event{{
		Type:          EventAutoRejected,
		ApplicationID: app.ID,
		From:          from,
		To:            application.StageRejected,
		Reason:        AutoRejectReason,
		At:            now,
	}}
	return events, true, nil
}
