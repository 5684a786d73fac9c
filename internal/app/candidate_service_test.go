package app

import (
	"context"
	"testing"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/candidate"
	"talentdesk/internal/repository/memory"
)

func TestCandidateCreateNormalizesEmail(t *testing.T) {
	svc := NewCandidateService(memory.NewCandidateStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, candidate.Candidate{Name: " Dana Reyes ", Email: " Dana@Example.COM "})
	if err != nil {
		t.Fatal(err)
	}
	if created.Email != "dana@example.com" {
		t.Fatalf("email: %s", created.Email)
	}
	if created.Name != "Dana Reyes" {
		t.Fatalf("name: %q", created.Name)
	}

	if _, err := svc.Create(ctx, candidate.Candidate{Name: "Dana", Email: "dana@example.com"}); !common.Is(err, common.CodeConflict) {
		t.Fatalf("duplicate email: %v", err)
	}
}

func TestCandidateCreateRejectsBadEmail(t *testing.T) {
	svc := NewCandidateService(memory.NewCandidateStore())
	if _, err := svc.Create(context.Background(), candidate.Candidate{Name: "Dana", Email: "not-an-email"}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
