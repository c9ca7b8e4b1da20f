package registry

import "fmt"

// DuplicateStepError is returned when a (keyword, pattern) pair is
// registered twice. Re-registering a different handler for the same
// pattern is a programmer error and must surface immediately.
type DuplicateStepError struct {
	Keyword string
	Pattern string
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("step already registered: %s %q", e.Keyword, e.Pattern)
}

// NoMatchingStepError is returned when no registered pattern accepts a
// literal step text.
type NoMatchingStepError struct {
	Keyword string
	Text    string
}

func (e *NoMatchingStepError) Error() string {
	return fmt.Sprintf("no matching step definition for: %s %q", e.Keyword, e.Text)
}

// PendingStepError marks a step whose handler is a bare stub. It carries
// the literal step text for traceability.
type PendingStepError struct {
	Text string
}

func (e *PendingStepError) Error() string {
	return fmt.Sprintf("step not implemented: %s", e.Text)
}

// Pending builds the error a generated skeleton handler returns.
func Pending(text string) error {
	return &PendingStepError{Text: text}
}
