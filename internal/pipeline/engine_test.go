package pipeline

import (
	"errors"
	"strings"
	"testing"
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/application"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestApp() *application.JobApplication {
	app := application.New(common.NewUUID(), common.NewUUID(), t0)
	app.ID = common.NewUUID()
	return app
}

func mustTransition(t *testing.T, engine *Engine, app *application.JobApplication, target application.Stage, now time.Time) []Event {
	t.Helper()
	events, err := engine.RequestTransition(app, target, "recruiter-1", now, false)
	if err != nil {
		t.Fatalf("transition to %s: %v", target, err)
	}
	return events
}

func TestRequestTransitionAppendsHistory(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()

	now := t0.Add(time.Hour)
	events := mustTransition(t, engine, app, application.StageScreening, now)

	if app.CurrentStage != application.StageScreening {
		t.Fatalf("current stage: got %s", app.CurrentStage)
	}
	if len(app.StageHistory) != 2 {
		t.Fatalf("history length: got %d, want 2", len(app.StageHistory))
	}
	if app.LastEntry().Stage != app.CurrentStage {
		t.Fatalf("last entry %s does not match current stage %s", app.LastEntry().Stage, app.CurrentStage)
	}
	first := app.StageHistory[0]
	if first.EndedAt == nil || !first.EndedAt.Equal(now) {
		t.Fatalf("previous entry not closed: %+v", first)
	}
	if len(events) != 1 || events[0].Type != EventStageChanged {
		t.Fatalf("events: %+v", events)
	}
	if events[0].From != application.StageApplied || events[0].To != application.StageScreening {
		t.Fatalf("event stages: %+v", events[0])
	}
}

func TestRequestTransitionUnknownStageLeavesAppUntouched(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()

	_, err := engine.RequestTransition(app, "shortlisted", "recruiter-1", t0, false)
	if !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("expected unknown stage error, got %v", err)
	}
	if app.CurrentStage != application.StageApplied || len(app.StageHistory) != 1 {
		t.Fatalf("application mutated on error: %+v", app)
	}
}

func TestRequestTransitionFromHiredFails(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()
	mustTransition(t, engine, app, application.StageHired, t0.Add(time.Hour))

	_, err := engine.RequestTransition(app, application.StageScreening, "recruiter-1", t0.Add(2*time.Hour), false)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected illegal transition error, got %v", err)
	}
	if app.CurrentStage != application.StageHired || len(app.StageHistory) != 2 {
		t.Fatalf("application mutated on error: stage=%s history=%d", app.CurrentStage, len(app.StageHistory))
	}
}

func TestRejectionLegalFromAnyNonTerminalStage(t *testing.T) {
	engine := NewEngine(nil)
	for _, from := range []application.Stage{
		application.StageApplied,
		application.StageScreening,
		application.StageInterview,
		application.StageTechnical,
		application.StageOffer,
	} {
		app := newTestApp()
		if from != application.StageApplied {
			mustTransition(t, engine, app, from, t0.Add(time.Hour))
		}
		mustTransition(t, engine, app, application.StageRejected, t0.Add(2*time.Hour))
		if app.CurrentStage != application.StageRejected {
			t.Fatalf("rejection from %s: stage is %s", from, app.CurrentStage)
		}
		if app.Status != application.StatusCompleted {
			t.Fatalf("rejection from %s: status is %s", from, app.Status)
		}
	}
}

func TestInterviewCreatesPendingConfirmation(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()

	events := mustTransition(t, engine, app, application.StageInterview, t0)

	conf := app.Confirmation
	if conf == nil || conf.State != application.ConfirmationPending {
		t.Fatalf("confirmation: %+v", conf)
	}
	if conf.Type != "interview" {
		t.Fatalf("confirmation type: %s", conf.Type)
	}
	wantDeadline := t0.AddDate(0, 0, 3)
	if !conf.Deadline.Equal(wantDeadline) {
		t.Fatalf("deadline: got %s, want %s", conf.Deadline, wantDeadline)
	}
	if len(events) != 2 || events[1].Type != EventConfirmationRequired {
		t.Fatalf("events: %+v", events)
	}
}

func TestTechnicalStageCreatesNoConfirmation(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()

	mustTransition(t, engine, app, application.StageTechnical, t0)
	if app.Confirmation != nil {
		t.Fatalf("unexpected confirmation: %+v", app.Confirmation)
	}

	// No confirmation means the sweeper never touches this application.
	events, changed, err := engine.Sweep(app, t0.AddDate(0, 0, 365))
	if err != nil || changed || len(events) != 0 {
		t.Fatalf("sweep touched application without confirmation: changed=%v events=%v err=%v", changed, events, err)
	}
}

func TestConfirmationClearedWhenNextStageNeedsNone(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()
	mustTransition(t, engine, app, application.StageInterview, t0)
	mustTransition(t, engine, app, application.StageTechnical, t0.Add(time.Hour))
	if app.Confirmation != nil {
		t.Fatalf("confirmation not cleared: %+v", app.Confirmation)
	}
}

func TestRespondRoundTripAtDeadline(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()
	mustTransition(t, engine, app, application.StageInterview, t0)

	// Responding exactly at the deadline is still on time.
	deadline := app.Confirmation.Deadline
	changed, err := engine.RespondConfirmation(app, true, deadline)
	if err != nil || !changed {
		t.Fatalf("respond: changed=%v err=%v", changed, err)
	}
	view := app.Confirmation.View(deadline)
	if view.Confirmed == nil || !*view.Confirmed {
		t.Fatalf("confirmed: %+v", view)
	}
	if view.Overdue {
		t.Fatal("on-time response marked overdue")
	}
}

func TestRespondWithoutConfirmationFails(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()
	if _, err := engine.RespondConfirmation(app, true, t0); !errors.Is(err, ErrNoConfirmation) {
		t.Fatalf("expected no confirmation error, got %v", err)
	}
}

func TestRespondIsIdempotentOnceResolved(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()
	mustTransition(t, engine, app, application.StageInterview, t0)

	if changed, err := engine.RespondConfirmation(app, true, t0.Add(time.Hour)); err != nil || !changed {
		t.Fatalf("first respond: changed=%v err=%v", changed, err)
	}
	changed, err := engine.RespondConfirmation(app, false, t0.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("second respond: %v", err)
	}
	if changed {
		t.Fatal("second respond mutated a resolved confirmation")
	}
	if app.Confirmation.State != application.ConfirmationConfirmed {
		t.Fatalf("state overwritten: %s", app.Confirmation.State)
	}
}

func TestSweepAutoRejectsOverdueInterview(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()
	mustTransition(t, engine, app, application.StageInterview, t0)

	now := t0.AddDate(0, 0, 4)
	events, changed, err := engine.Sweep(app, now)
	if err != nil || !changed {
		t.Fatalf("sweep: changed=%v err=%v", changed, err)
	}
	if app.CurrentStage != application.StageRejected {
		t.Fatalf("current stage: %s", app.CurrentStage)
	}
	if app.Confirmation.State != application.ConfirmationAutoRejected {
		t.Fatalf("confirmation state: %s", app.Confirmation.State)
	}
	if len(app.StageHistory) != 3 {
		t.Fatalf("history length: got %d, want 3", len(app.StageHistory))
	}
	last := app.LastEntry()
	if !strings.Contains(last.Reason, "auto-rejected") {
		t.Fatalf("last entry reason: %q", last.Reason)
	}
	if len(events) != 1 || events[0].Type != EventAutoRejected {
		t.Fatalf("events: %+v", events)
	}

	// A second sweep at the same instant must not append another entry.
	events, changed, err = engine.Sweep(app, now)
	if err != nil || changed || len(events) != 0 {
		t.Fatalf("second sweep not idempotent: changed=%v events=%v err=%v", changed, events, err)
	}
	if len(app.StageHistory) != 3 {
		t.Fatalf("duplicate auto-rejection entry: history length %d", len(app.StageHistory))
	}
}

func TestSweepDeadlineBoundary(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()
	mustTransition(t, engine, app, application.StageInterview, t0)
	deadline := app.Confirmation.Deadline

	if _, changed, _ := engine.Sweep(app, deadline); changed {
		t.Fatal("sweep exactly at deadline must not reject")
	}
	if _, changed, _ := engine.Sweep(app, deadline.Add(time.Nanosecond)); !changed {
		t.Fatal("sweep one tick past deadline must reject")
	}
}

func TestSweepWithoutAutoRejectPolicyLeavesPending(t *testing.T) {
	policy := DefaultPolicy()
	policy.rules[application.StageInterview] = Rule{RequiresConfirmation: true, DeadlineDays: 3, AutoRejectOnOverdue: false}
	engine := NewEngine(policy)
	app := newTestApp()
	mustTransition(t, engine, app, application.StageInterview, t0)

	now := t0.AddDate(0, 0, 10)
	events, changed, err := engine.Sweep(app, now)
	if err != nil || changed || len(events) != 0 {
		t.Fatalf("sweep rejected despite policy: changed=%v events=%v err=%v", changed, events, err)
	}
	view := app.Confirmation.View(now)
	if !view.Overdue || view.AutoRejected {
		t.Fatalf("view: %+v", view)
	}
	if app.CurrentStage != application.StageInterview {
		t.Fatalf("stage changed: %s", app.CurrentStage)
	}
}

func TestSweepIgnoresResolvedConfirmation(t *testing.T) {
	engine := NewEngine(nil)
	app := newTestApp()
	mustTransition(t, engine, app, application.StageOffer, t0)
	if _, err := engine.RespondConfirmation(app, false, t0.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	_, changed, err := engine.Sweep(app, t0.AddDate(0, 0, 30))
	if err != nil || changed {
		t.Fatalf("sweep touched resolved confirmation: changed=%v err=%v", changed, err)
	}
	if app.Confirmation.State != application.ConfirmationDeclined {
		t.Fatalf("state: %s", app.Confirmation.State)
	}
}

func TestRequestTransitionEmptyHistoryIsInvariantViolation(t *testing.T) {
	engine := NewEngine(nil)
	app := &application.JobApplication{ID: common.NewUUID(), CurrentStage: application.StageApplied, Status: application.StatusActive}

	_, err := engine.RequestTransition(app, application.StageScreening, "recruiter-1", t0, false)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}
