package pipeline

import (
	"errors"
	"fmt"

	"talentdesk/internal/domain/application"
)

var (
	ErrUnknownStage       = errors.New("unknown stage")
	ErrTerminalStage      = errors.New("terminal stage")
	ErrIllegalTransition  = errors.New("illegal stage transition")
	ErrInvariantViolation = errors.New("stage history invariant violated")
)

// stageOrder is the canonical forward sequence. Rejected sits last and is
// reachable from any non-terminal stage regardless of ordinal.
var stageOrder = []application.Stage{
	application.StageApplied,
	application.StageScreening,
	application.StageInterview,
	application.StageTechnical,
	application.StageOffer,
	application.StageHired,
	application.StageRejected,
}

var stageOrdinals = func() map[application.Stage]int {
	m := make(map[application.Stage]int, len(stageOrder))
	for i, s := range stageOrder {
		m[s] = i
	}
	return m
}()

func Stages() []application.Stage {
	out := make([]application.Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

func Ordinal(stage application.Stage) (int, error) {
	ord, ok := stageOrdinals[stage]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
	return ord, nil
}

func KnownStage(stage application.Stage) bool {
	_, ok := stageOrdinals[stage]
	return ok
}

func TerminalStage(stage application.Stage) bool {
	return stage == application.StageHired || stage == application.StageRejected
}

// Next returns the forward neighbor in the sequence.
func Next(stage application.Stage) (application.Stage, error) {
	ord, err := Ordinal(stage)
	if err != nil {
		return "", err
	}
	if TerminalStage(stage) {
		return "", fmt.Errorf("%w: %q", ErrTerminalStage, stage)
	}
	return stageOrder[ord+1], nil
}

// IsForwardTransition reports whether from -> to is legal through the normal
// entry point: strictly forward in the sequence, or a rejection from any
// non-terminal stage. Backward moves are never legal here.
func IsForwardTransition(from, to application.Stage) bool {
	fromOrd, ok := stageOrdinals[from]
	if !ok {
		return false
	}
	toOrd, ok := stageOrdinals[to]
	if !ok {
		return false
	}
	if TerminalStage(from) {
		return false
	}
	if to == application.StageRejected {
		return true
	}
	return toOrd > fromOrd
}
