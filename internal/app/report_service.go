package app

import (
	"context"
	"sort"
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/application"
	"talentdesk/internal/pipeline"
)

type StageMetrics struct {
	Stage          application.Stage `json:"stage"`
	Active         int               `json:"active"`
	Total          int               `json:"total"`
	AvgDaysInStage float64           `json:"avg_days_in_stage"`
}

type PipelineReport struct {
	GeneratedAt          time.Time      `json:"generated_at"`
	Stages               []StageMetrics `json:"stages"`
	PendingConfirmations int            `json:"pending_confirmations"`
	OverdueConfirmations int            `json:"overdue_confirmations"`
}

type ScheduleItem struct {
	ApplicationID common.UUID       `json:"application_id"`
	CandidateID   common.UUID       `json:"candidate_id"`
	JobID         common.UUID       `json:"job_id"`
	Stage         application.Stage `json:"stage"`
	Type          string            `json:"type"`
	Deadline      time.Time         `json:"deadline"`
	Overdue       bool              `json:"overdue"`
}

// ReportService derives dashboard numbers from stored history. Everything
// here is computed from entry timestamps and the injected clock; nothing
// is fabricated or cached.
type ReportService struct {
	repo  application.Repository
	clock func() time.Time
}

func NewReportService(repo application.Repository) *ReportService {
	return &ReportService{repo: repo, clock: func() time.Time { return time.Now().UTC() }}
}

func (s *ReportService) Pipeline(ctx context.Context) (*PipelineReport, error) {
	apps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()

	type bucket struct {
		active int
		total  int
		spent  time.Duration
		stays  int
	}
	buckets := make(map[application.Stage]*bucket)
	for _, stage := range pipeline.Stages() {
		buckets[stage] = &bucket{}
	}

	report := &PipelineReport{GeneratedAt: now}
	for i := range apps {
		a := &apps[i]
		seen := make(map[application.Stage]bool)
		for _, entry := range a.StageHistory {
			b, ok := buckets[entry.Stage]
			if !ok {
				continue
			}
			if !seen[entry.Stage] {
				b.total++
				seen[entry.Stage] = true
			}
			b.spent += entry.Duration(now)
			b.stays++
		}
		if a.Status == application.StatusActive {
			if b, ok := buckets[a.CurrentStage]; ok {
				b.active++
			}
		}
		if conf := a.Confirmation; conf != nil && !conf.Resolved() {
			report.PendingConfirmations++
			if conf.Overdue(now) {
				report.OverdueConfirmations++
			}
		}
	}

	for _, stage := range pipeline.Stages() {
		b := buckets[stage]
		metrics := StageMetrics{Stage: stage, Active: b.active, Total: b.total}
		if b.stays > 0 {
			metrics.AvgDaysInStage = b.spent.Hours() / 24 / float64(b.stays)
		}
		report.Stages = append(report.Stages, metrics)
	}
	return report, nil
}

// Schedule lists pending confirmations ordered by deadline, feeding the
// dashboard's calendar view.
func (s *ReportService) Schedule(ctx context.Context) ([]ScheduleItem, error) {
	apps, err := s.repo.ListWithPendingConfirmation(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	items := make([]ScheduleItem, 0, len(apps))
	for i := range apps {
		a := &apps[i]
		conf := a.Confirmation
		if conf == nil || conf.Resolved() {
			continue
		}
		items = append(items, ScheduleItem{
			ApplicationID: a.ID,
			CandidateID:   a.CandidateID,
			JobID:         a.JobID,
			Stage:         a.CurrentStage,
			Type:          conf.Type,
			Deadline:      conf.Deadline,
			Overdue:       conf.Overdue(now),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Deadline.Before(items[j].Deadline) })
	return items, nil
}
