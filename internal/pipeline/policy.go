package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"talentdesk/internal/domain/application"
)

// Rule is the per-stage confirmation requirement. Interview attendance and
// offer acceptance are binding on the candidate; everything else is internal
// recruiter bookkeeping.
type Rule struct {
	RequiresConfirmation bool `yaml:"requires_confirmation"`
	DeadlineDays         int  `yaml:"deadline_days"`
	AutoRejectOnOverdue  bool `yaml:"auto_reject_on_overdue"`
}

type Policy struct {
	rules map[application.Stage]Rule
}

var defaultRule = Rule{RequiresConfirmation: false, DeadlineDays: 5, AutoRejectOnOverdue: false}

func DefaultPolicy() *Policy {
	return &Policy{rules: map[application.Stage]Rule{
		application.StageApplied:   {RequiresConfirmation: false, DeadlineDays: 5, AutoRejectOnOverdue: false},
		application.StageScreening: {RequiresConfirmation: false, DeadlineDays: 5, AutoRejectOnOverdue: false},
		application.StageInterview: {RequiresConfirmation: true, DeadlineDays: 3, AutoRejectOnOverdue: true},
		application.StageTechnical: {RequiresConfirmation: false, DeadlineDays: 7, AutoRejectOnOverdue: false},
		application.StageOffer:     {RequiresConfirmation: true, DeadlineDays: 5, AutoRejectOnOverdue: true},
		application.StageHired:     {RequiresConfirmation: false, DeadlineDays: 0, AutoRejectOnOverdue: false},
		application.StageRejected:  {RequiresConfirmation: false, DeadlineDays: 0, AutoRejectOnOverdue: false},
	}}
}

// Rule looks up the stage rule, falling back to the default for anything
// outside the catalog.
func (p *Policy) Rule(stage application.Stage) Rule {
	if rule, ok := p.rules[stage]; ok {
		return rule
	}
	return defaultRule
}

// LoadPolicyFile merges YAML stage overrides on top of the default table.
func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	var overrides map[application.Stage]Rule
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	policy := DefaultPolicy()
	for stage, rule := range overrides {
		if !KnownStage(stage) {
			return nil, fmt.Errorf("%w: %q in %s", ErrUnknownStage, stage, path)
		}
		policy.rules[stage] = rule
	}
	return policy, nil
}
