package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"talentdesk/internal/domain/application"
)

func TestDefaultPolicyTable(t *testing.T) {
	policy := DefaultPolicy()
	cases := []struct {
		stage application.Stage
		want  Rule
	}{
		{application.StageApplied, Rule{false, 5, false}},
		{application.StageScreening, Rule{false, 5, false}},
		{application.StageInterview, Rule{true, 3, true}},
		{application.StageTechnical, Rule{false, 7, false}},
		{application.StageOffer, Rule{true, 5, true}},
		{application.StageHired, Rule{false, 0, false}},
		{application.StageRejected, Rule{false, 0, false}},
	}
	for _, tc := range cases {
		if got := policy.Rule(tc.stage); got != tc.want {
			t.Errorf("rule %s: got %+v, want %+v", tc.stage, got, tc.want)
		}
	}
}

func TestPolicyUnknownStageFallback(t *testing.T) {
	policy := DefaultPolicy()
	got := policy.Rule("shortlisted")
	want := Rule{RequiresConfirmation: false, DeadlineDays: 5, AutoRejectOnOverdue: false}
	if got != want {
		t.Fatalf("fallback rule: got %+v, want %+v", got, want)
	}
}

func TestLoadPolicyFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := "interview:\n  requires_confirmation: true\n  deadline_days: 2\n  auto_reject_on_overdue: false\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	policy, err := LoadPolicyFile(path)
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}
	got := policy.Rule(application.StageInterview)
	want := Rule{RequiresConfirmation: true, DeadlineDays: 2, AutoRejectOnOverdue: false}
	if got != want {
		t.Fatalf("override rule: got %+v, want %+v", got, want)
	}
	if got := policy.Rule(application.StageOffer); got != (Rule{true, 5, true}) {
		t.Fatalf("untouched rule changed: %+v", got)
	}
}

func TestLoadPolicyFileRejectsUnknownStage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("shortlisted:\n  deadline_days: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPolicyFile(path); err == nil {
		t.Fatal("expected error for unknown stage override")
	}
}
