package email

import (
	"context"
	"log/slog"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/application"
)

type Message struct {
	TemplateID    string            `json:"template_id"`
	Recipient     string            `json:"recipient"`
	Subject       string            `json:"subject"`
	Body          string            `json:"body"`
	ApplicationID common.UUID       `json:"application_id"`
	TargetStage   application.Stage `json:"target_stage"`
}

// Dispatcher hands a rendered message to whatever delivers it. The engine
// never retries; callers decide what a failure means for mail_sent.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

// LogDispatcher stands in for a real mail provider: it logs the message
// and reports success.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Send(_ context.Context, msg Message) error {
	d.logger.Info("email dispatched",
		slog.String("template", msg.TemplateID),
		slog.String("recipient", msg.Recipient),
		slog.String("subject", msg.Subject),
		slog.String("application_id", msg.ApplicationID.String()),
	)
	return nil
}
