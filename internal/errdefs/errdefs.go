package errdefs

import "fmt"

type ErrorType int

const (
	ErrTypeTerminalTooSmall ErrorType = iota
	ErrTypeUserCancelled
	ErrTypeStepFailed
	ErrTypeNotLinux
	ErrTypeInvalidArchitecture
	ErrTypeUnsupportedDistribution
	ErrTypeGeneric
)

type CustomError struct {
	Type    ErrorType
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

func NewCustomError(errType ErrorType, message string) error {
	return &CustomError{
		Type:    errType,
		Message: message,
	}
}

// ErrUserCancelled is a normal negative result, not a failure: declining a
// confirmation or escaping a dialog propagates it as a value.
var ErrUserCancelled = NewCustomError(ErrTypeUserCancelled, "installation cancelled by user")

// TerminalSizeError carries the detected terminal geometry when it is below
// the minimum the wizard can render in.
type TerminalSizeError struct {
	Width  int
	Height int
}

func (e *TerminalSizeError) Error() string {
	return fmt.Sprintf("terminal too small: %dx%d", e.Width, e.Height)
}

// StepError marks the pipeline step that aborted a phase.
type StepError struct {
	Label  string
	Detail string
}

func (e *StepError) Error() string {
	if e.Detail == "" {
		return e.Label
	}
	return fmt.Sprintf("%s: %s", e.Label, e.Detail)
}
