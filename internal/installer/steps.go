package installer

import (
	"context"

	"github.com/armando-rios/dev-setup/internal/errdefs"
)

type StepStatus int

const (
	StatusPending StepStatus = iota
	StatusCurrent
	StatusCompleted
	StatusError
)

// Step is one named unit of work inside a phase. Run receives the phase
// context and reports failure through its error.
type Step struct {
	Label string
	Run   func(ctx context.Context) error
}

// StepView is the render-ready snapshot of one step.
type StepView struct {
	Label  string
	Status StepStatus
}

// PhaseResult reports whether a phase ran to completion and, when it did
// not, the failed step's label with the collaborator-provided detail.
type PhaseResult struct {
	Success bool
	Reason  string
}

// RunPhase executes steps strictly in order, emitting a snapshot before
// and after each one. Exactly one step is current at a time. The first
// failure marks its step, emits a terminal message, and ends the phase;
// a failed phase ends the whole run, so that message carries Done.
func RunPhase(ctx context.Context, phase InstallPhase, steps []Step, progress chan<- ProgressMsg) PhaseResult {
	views := make([]StepView, len(steps))
	for i, step := range steps {
		views[i] = StepView{Label: step.Label, Status: StatusPending}
	}

	emit := func(done bool, err error) {
		snapshot := make([]StepView, len(views))
		copy(snapshot, views)
		progress <- ProgressMsg{Phase: phase, Steps: snapshot, Done: done, Err: err}
	}

	fail := func(i int, detail string) PhaseResult {
		views[i].Status = StatusError
		stepErr := &errdefs.StepError{Label: steps[i].Label, Detail: detail}
		emit(true, stepErr)
		return PhaseResult{Success: false, Reason: stepErr.Error()}
	}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return fail(i, "cancelled")
		}

		views[i].Status = StatusCurrent
		emit(false, nil)

		if err := step.Run(ctx); err != nil {
			return fail(i, err.Error())
		}

		views[i].Status = StatusCompleted
		emit(false, nil)
	}

	return PhaseResult{Success: true}
}
