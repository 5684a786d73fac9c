package application

import (
	"time"

	"talentdesk/internal/common"
)

type Stage string

const (
	StageApplied   Stage = "applied"
	StageScreening Stage = "screening"
	StageInterview Stage = "interview"
	StageTechnical Stage = "technical"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusWithdrawn Status = "withdrawn"
	StatusCompleted Status = "completed"
)

// StageHistoryEntry is an append-only record of one stay in a stage.
// EndedAt is nil while the entry is the current one.
type StageHistoryEntry struct {
	Stage         Stage      `json:"stage"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	ActorID       string     `json:"actor_id,omitempty"`
	MailSent      bool       `json:"mail_sent"`
	MailConfirmed bool       `json:"mail_confirmed"`
}

func (e StageHistoryEntry) Duration(now time.Time) time.Duration {
	if e.EndedAt != nil {
		return e.EndedAt.Sub(e.StartedAt)
	}
	return now.Sub(e.StartedAt)
}

type JobApplication struct {
	ID           common.UUID         `json:"id"`
	CandidateID  common.UUID         `json:"candidate_id"`
	JobID        common.UUID         `json:"job_id"`
	CurrentStage Stage               `json:"current_stage"`
	StageHistory []StageHistoryEntry `json:"stage_history"`
	Confirmation *Confirmation       `json:"confirmation,omitempty"`
	Status       Status              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// New builds an application already sitting in the applied stage, so the
// history is never empty and its last entry always matches CurrentStage.
func New(candidateID, jobID common.UUID, now time.Time) *JobApplication {
	return &JobApplication{
		CandidateID:  candidateID,
		JobID:        jobID,
		CurrentStage: StageApplied,
		StageHistory: []StageHistoryEntry{{Stage: StageApplied, StartedAt: now}},
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (a *JobApplication) LastEntry() *StageHistoryEntry {
	if len(a.StageHistory) == 0 {
		return nil
	}
	return &a.StageHistory[len(a.StageHistory)-1]
}

func (a *JobApplication) Terminal() bool {
	return a.CurrentStage == StageHired || a.CurrentStage == StageRejected
}

// Clone deep-copies the aggregate so stores can hand out values without
// sharing the history slice.
func (a *JobApplication) Clone() *JobApplication {
	dup := *a
	dup.StageHistory = make([]StageHistoryEntry, len(a.StageHistory))
	copy(dup.StageHistory, a.StageHistory)
	for i, e := range a.StageHistory {
		if e.EndedAt != nil {
			ended := *e.EndedAt
			dup.StageHistory[i].EndedAt = &ended
		}
	}
	if a.Confirmation != nil {
		conf := *a.Confirmation
		if a.Confirmation.ResolvedAt != nil {
			resolved := *a.Confirmation.ResolvedAt
			conf.ResolvedAt = &resolved
		}
		dup.Confirmation = &conf
	}
	return &dup
}
