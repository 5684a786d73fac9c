package pipeline

import (
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/application"
)

type EventType string

const (
	EventStageChanged         EventType = "stage_changed"
	EventConfirmationRequired EventType = "confirmation_required"
	EventAutoRejected         EventType = "auto_rejected"
)

type Event struct {
	Type          EventType         `json:"type"`
	ApplicationID common.UUID       `json:"application_id"`
	From          application.Stage `json:"from,omitempty"`
	To            application.Stage `json:"to,omitempty"`
	Deadline      *time.Time        `json:"deadline,omitempty"`
	Reason        string            `json:"reason,omitempty"`
	At            time.Time         `json:"at"`
}

// Sink receives engine events. Delivery is at-most-once; consumers that
// miss an event reload state from the repository.
type Sink interface {
	Publish(event Event)
}

type NopSink struct{}

func (NopSink) Publish(Event) {}
