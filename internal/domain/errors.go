package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a malformed applicant, candidate or quiz input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownRegion signals a region code missing from the proximity graph.
	ErrUnknownRegion = fmt.Errorf("%w: unknown region", ErrInvalidInput)
	// ErrUnknownTrack signals a qualification track outside the enumerated values.
	ErrUnknownTrack = fmt.Errorf("%w: unknown track", ErrInvalidInput)
	// ErrIllegalTransition signals a quiz operation not allowed in the current state.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrSessionNotFound signals a missing or expired quiz session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNotReady signals a quiz result requested before the session is complete.
	ErrNotReady = fmt.Errorf("%w: session not complete", ErrIllegalTransition)
)

// TransitionError describes a rejected quiz operation together with the
// phase the session was in.
type TransitionError struct {
	Phase  string
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s in phase %s: %s", ErrIllegalTransition.Error(), e.Phase, e.Reason)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// NewTransitionError creates an illegal transition error.
func NewTransitionError(phase, reason string) error {
	return &TransitionError{Phase: phase, Reason: reason}
}
