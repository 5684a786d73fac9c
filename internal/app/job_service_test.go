package app

import (
	"context"
	"testing"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/job"
	"talentdesk/internal/repository/memory"
)

func TestJobCreateValidation(t *testing.T) {
	svc := NewJobService(memory.NewJobStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, job.Job{Description: "x", Requirements: []string{"go"}}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("missing title: %v", err)
	}
	if _, err := svc.Create(ctx, job.Job{Title: "x", Description: "y", Requirements: []string{"go"}, Status: "archived"}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("bad status: %v", err)
	}

	created, err := svc.Create(ctx, job.Job{Title: "Backend Engineer", Description: "Go services", Requirements: []string{"go"}})
	if err != nil {
		t.Fatal(err)
	}
	if created.Status != job.StatusDraft {
		t.Fatalf("default status: %s", created.Status)
	}
}

func TestJobClosedIsFinal(t *testing.T) {
	svc := NewJobService(memory.NewJobStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, job.Job{Title: "Backend Engineer", Description: "Go services", Requirements: []string{"go"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(ctx, created.ID, job.StatusPublished); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(ctx, created.ID, job.StatusClosed); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(ctx, created.ID, job.StatusPublished); !common.Is(err, common.CodeValidation) {
		t.Fatalf("reopened a closed job: %v", err)
	}
}
