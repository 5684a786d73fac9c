package pipeline

import (
	"testing"

	"talentdesk/internal/common"
)

func TestFeedNewestFirstAndCapped(t *testing.T) {
	feed := NewFeed(2)
	first := Event{Type: EventStageChanged, ApplicationID: common.NewUUID()}
	second := Event{Type: EventConfirmationRequired, ApplicationID: common.NewUUID()}
	third := Event{Type: EventAutoRejected, ApplicationID: common.NewUUID()}

	feed.Publish(first)
	feed.Publish(second)
	feed.Publish(third)

	events := feed.List()
	if len(events) != 2 {
		t.Fatalf("length: got %d, want 2", len(events))
	}
	if events[0].Type != EventAutoRejected || events[1].Type != EventConfirmationRequired {
		t.Fatalf("order: %+v", events)
	}
}
