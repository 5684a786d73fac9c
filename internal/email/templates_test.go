package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/application"
	"talentdesk/internal/domain/candidate"
	"talentdesk/internal/domain/job"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type captureDispatcher struct {
	sent []Message
	err  error
}

func (d *captureDispatcher) Send(_ context.Context, msg Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, msg)
	return nil
}

func fixtures() (*application.JobApplication, *candidate.Candidate, *job.Job) {
	app := application.New(common.NewUUID(), common.NewUUID(), t0)
	app.ID = common.NewUUID()
	cand := &candidate.Candidate{ID: app.CandidateID, Name: "Dana Reyes", Email: "dana@example.com"}
	j := &job.Job{ID: app.JobID, Title: "Backend Engineer", Department: "Platform"}
	return app, cand, j
}

func TestSendStageMailRendersInterviewInvite(t *testing.T) {
	app, cand, j := fixtures()
	app.Confirmation = application.NewConfirmation("interview", t0, 3)
	dispatcher := &captureDispatcher{}
	svc := NewService(dispatcher)

	sent, err := svc.SendStageMail(context.Background(), app, cand, j, application.StageInterview)
	if err != nil || !sent {
		t.Fatalf("send: sent=%v err=%v", sent, err)
	}
	if len(dispatcher.sent) != 1 {
		t.Fatalf("dispatched: %d", len(dispatcher.sent))
	}
	msg := dispatcher.sent[0]
	if msg.TemplateID != "interview_invite" {
		t.Fatalf("template: %s", msg.TemplateID)
	}
	if msg.Recipient != "dana@example.com" {
		t.Fatalf("recipient: %s", msg.Recipient)
	}
	if !strings.Contains(msg.Subject, "Backend Engineer") {
		t.Fatalf("subject: %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Dana Reyes") || !strings.Contains(msg.Body, "Platform") {
		t.Fatalf("body: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "2024-05-04") {
		t.Fatalf("body missing deadline: %q", msg.Body)
	}
}

func TestSendStageMailSkipsStagesWithoutTemplate(t *testing.T) {
	app, cand, j := fixtures()
	dispatcher := &captureDispatcher{}
	svc := NewService(dispatcher)

	sent, err := svc.SendStageMail(context.Background(), app, cand, j, application.StageScreening)
	if err != nil || sent {
		t.Fatalf("send: sent=%v err=%v", sent, err)
	}
	if len(dispatcher.sent) != 0 {
		t.Fatalf("unexpected dispatch: %+v", dispatcher.sent)
	}
}

func TestSendStageMailPropagatesDispatchError(t *testing.T) {
	app, cand, j := fixtures()
	dispatcher := &captureDispatcher{err: errors.New("smtp unavailable")}
	svc := NewService(dispatcher)

	sent, err := svc.SendStageMail(context.Background(), app, cand, j, application.StageOffer)
	if err == nil || sent {
		t.Fatalf("send: sent=%v err=%v", sent, err)
	}
}

func TestHasTemplate(t *testing.T) {
	if !HasTemplate(application.StageInterview) || !HasTemplate(application.StageOffer) || !HasTemplate(application.StageRejected) {
		t.Fatal("expected templates for interview, offer and rejected")
	}
	if HasTemplate(application.StageApplied) || HasTemplate(application.StageHired) {
		t.Fatal("unexpected template")
	}
}
