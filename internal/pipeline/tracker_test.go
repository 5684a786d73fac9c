package pipeline

import (
	"testing"
	"time"

	"talentdesk/internal/domain/application"
)

func TestEnterStageSnapshotsPolicyDeadline(t *testing.T) {
	tracker := EnterStage(application.StageInterview, t0, DefaultPolicy())
	if !tracker.ConfirmationRequired {
		t.Fatal("interview should require confirmation")
	}
	if want := t0.AddDate(0, 0, 3); !tracker.Deadline.Equal(want) {
		t.Fatalf("deadline: got %s, want %s", tracker.Deadline, want)
	}
}

func TestDaysInStageTruncates(t *testing.T) {
	tracker := EnterStage(application.StageScreening, t0, DefaultPolicy())
	if got := tracker.DaysInStage(t0.Add(47 * time.Hour)); got != 1 {
		t.Fatalf("days in stage: got %d, want 1", got)
	}
	if got := tracker.DaysInStage(t0.Add(49 * time.Hour)); got != 2 {
		t.Fatalf("days in stage: got %d, want 2", got)
	}
}
