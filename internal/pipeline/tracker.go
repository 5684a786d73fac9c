package pipeline

import (
	"time"

	"talentdesk/internal/domain/application"
)

// StageTracker snapshots when a stage was entered and when its policy
// deadline lapses. Deadlines are fixed at entry; re-entering the same stage
// produces a fresh tracker.
type StageTracker struct {
	Stage                application.Stage `json:"stage"`
	EnteredAt            time.Time         `json:"entered_at"`
	Deadline             time.Time         `json:"deadline"`
	ConfirmationRequired bool              `json:"confirmation_required"`
}

func EnterStage(stage application.Stage, now time.Time, policy *Policy) StageTracker {
	rule := policy.Rule(stage)
	return StageTracker{
		Stage:                stage,
		EnteredAt:            now,
		Deadline:             now.AddDate(0, 0, rule.DeadlineDays),
		ConfirmationRequired: rule.RequiresConfirmation,
	}
}

func (t StageTracker) DaysInStage(now time.Time) int {
	return int(now.Sub(t.EnteredAt).Hours() / 24)
}
