package pipeline

import (
	"errors"
	"testing"

	"talentdesk/internal/domain/application"
)

func TestOrdinalFollowsSequence(t *testing.T) {
	for i, stage := range Stages() {
		ord, err := Ordinal(stage)
		if err != nil {
			t.Fatalf("ordinal %s: %v", stage, err)
		}
		if ord != i {
			t.Fatalf("ordinal %s: got %d, want %d", stage, ord, i)
		}
	}
}

func TestOrdinalUnknownStage(t *testing.T) {
	if _, err := Ordinal("shortlisted"); !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("expected unknown stage error, got %v", err)
	}
}

func TestNextAdvancesByOne(t *testing.T) {
	for _, stage := range Stages() {
		if TerminalStage(stage) {
			if _, err := Next(stage); !errors.Is(err, ErrTerminalStage) {
				t.Fatalf("next %s: expected terminal stage error, got %v", stage, err)
			}
			continue
		}
		next, err := Next(stage)
		if err != nil {
			t.Fatalf("next %s: %v", stage, err)
		}
		ord, _ := Ordinal(stage)
		nextOrd, _ := Ordinal(next)
		if nextOrd != ord+1 {
			t.Fatalf("next %s: got ordinal %d, want %d", stage, nextOrd, ord+1)
		}
	}
}

func TestIsForwardTransition(t *testing.T) {
	cases := []struct {
		from, to application.Stage
		want     bool
	}{
		{application.StageApplied, application.StageScreening, true},
		{application.StageApplied, application.StageOffer, true},
		{application.StageScreening, application.StageApplied, false},
		{application.StageInterview, application.StageInterview, false},
		{application.StageApplied, application.StageRejected, true},
		{application.StageOffer, application.StageRejected, true},
		{application.StageHired, application.StageRejected, false},
		{application.StageRejected, application.StageApplied, false},
		{application.StageHired, application.StageScreening, false},
		{application.StageApplied, "shortlisted", false},
		{"shortlisted", application.StageScreening, false},
	}
	for _, tc := range cases {
		if got := IsForwardTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("IsForwardTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
