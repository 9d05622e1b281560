package scheduler

import "errors"

var (
	// ErrNotFound means the appointment or staff member does not exist. Permanent.
	ErrNotFound = errors.New("scheduler: not found")
	// ErrInvalidState means the appointment is no longer pending. Permanent,
	// surfaced to operators as "already handled".
	ErrInvalidState = errors.New("scheduler: appointment already handled")
	// ErrConflict means the availability re-check failed. The operator should
	// re-fetch availability and pick another staff member.
	ErrConflict = errors.New("scheduler: staff member is no longer available")
	// ErrUnavailable means the commitment lookup timed out or failed. The
	// whole operation can be retried.
	ErrUnavailable = errors.New("scheduler: could not verify availability, try again")
)
