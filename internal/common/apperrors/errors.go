// Package apperrors contains small struct-based error types shared across
// this module's packages: a typed error with an optional Message, wrapped
// at the call site with github.com/pkg/errors when a stack trace is
// useful.
package apperrors

import "fmt"

// ErrPreconditionViolation represents a violated precondition: a
// programmer error in how the caller constructed or drove a component,
// as opposed to a transient or instance-level failure. Field and Message
// are optional and omitted from the error message when empty.
type ErrPreconditionViolation struct {
	// Component is the name of the component whose precondition failed,
	// e.g. "updater.Engine".
	Component string
	// Field is the argument or state that violated the precondition,
	// e.g. "task_events".
	Field string
	// Message is an optional description of the violation.
	Message string
}

func (err *ErrPreconditionViolation) Error() (s string) {
	if err.Field != "" {
		s = fmt.Sprintf("%s: precondition violated for %q", err.Component, err.Field)
	} else {
		s = fmt.Sprintf("%s: precondition violated", err.Component)
	}
	if err.Message != "" {
		s = s + fmt.Sprintf("; %s", err.Message)
	}
	return
}
