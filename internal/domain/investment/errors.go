package investment

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// ArgumentError names the offending field. It matches ErrInvalidArgument
// under errors.Is.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s %s", e.Field, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

func invalid(field, reason string) error {
	return &ArgumentError{Field: field, Reason: reason}
}

// Unavailable wraps a collaborator failure so callers can tell it apart
// from bad input.
func Unavailable(name string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", name, ErrCollaboratorUnavailable)
	}
	return fmt.Errorf("%s: %w: %v", name, ErrCollaboratorUnavailable, err)
}
