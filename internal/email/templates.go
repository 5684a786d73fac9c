package email

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"talentdesk/internal/domain/application"
	"talentdesk/internal/domain/candidate"
	"talentdesk/internal/domain/job"
)

type stageTemplate struct {
	id      string
	subject *template.Template
	body    *template.Template
}

type templateData struct {
	CandidateName string
	JobTitle      string
	Department    string
	Deadline      string
}

func mustTemplate(id, subject, body string) stageTemplate {
	return stageTemplate{
		id:      id,
		subject: template.Must(template.New(id + ".subject").Parse(subject)),
		body:    template.Must(template.New(id + ".body").Parse(body)),
	}
}

// stageTemplates maps a target stage to the mail triggered on entering it.
// Stages without an entry trigger no mail.
var stageTemplates = map[application.Stage]stageTemplate{
	application.StageInterview: mustTemplate("interview_invite",
		"Interview invitation: {{.JobTitle}}",
		"Hi {{.CandidateName}},\n\nWe would like to invite you to an interview for the {{.JobTitle}} position{{if .Department}} in {{.Department}}{{end}}. Please confirm your attendance by {{.Deadline}}.\n"),
	application.StageOffer: mustTemplate("offer_letter",
		"Your offer for {{.JobTitle}}",
		"Hi {{.CandidateName}},\n\nCongratulations! We are pleased to offer you the {{.JobTitle}} position. Please accept or decline by {{.Deadline}}.\n"),
	application.StageRejected: mustTemplate("rejection_notice",
		"Update on your application for {{.JobTitle}}",
		"Hi {{.CandidateName}},\n\nThank you for your interest in the {{.JobTitle}} position. We have decided not to move forward with your application.\n"),
}

// Service renders stage-triggered mail and hands it to the dispatcher.
type Service struct {
	dispatcher Dispatcher
}

func NewService(dispatcher Dispatcher) *Service {
	return &Service{dispatcher: dispatcher}
}

func HasTemplate(stage application.Stage) bool {
	_, ok := stageTemplates[stage]
	return ok
}

// SendStageMail renders and dispatches the mail for entering target, if the
// stage has one. It reports whether a mail was actually sent.
func (s *Service) SendStageMail(ctx context.Context, app *application.JobApplication, cand *candidate.Candidate, j *job.Job, target application.Stage) (bool, error) {
	tmpl, ok := stageTemplates[target]
	if !ok {
		return false, nil
	}
	data := templateData{
		CandidateName: cand.Name,
		JobTitle:      j.Title,
		Department:    j.Department,
	}
	if app.Confirmation != nil {
		data.Deadline = app.Confirmation.Deadline.Format(time.DateOnly)
	}

	subject, err := render(tmpl.subject, data)
	if err != nil {
		return false, fmt.Errorf("render subject %s: %w", tmpl.id, err)
	}
	body, err := render(tmpl.body, data)
	if err != nil {
		return false, fmt.Errorf("render body %s: %w", tmpl.id, err)
	}

	msg := Message{
		TemplateID:    tmpl.id,
		Recipient:     cand.Email,
		Subject:       subject,
		Body:          body,
		ApplicationID: app.ID,
		TargetStage:   target,
	}
	if err := s.dispatcher.Send(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
