package workflow

import "errors"

// Engine failure taxonomy. Every operation returns the updated entity or
// one of these, wrapped with context; nothing here is retryable.
var (
	// ErrPermissionDenied means the actor's role or identity is
	// insufficient for the operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the operation references an unknown task,
	// member, or project id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState means the task is not in the approval stage the
	// transition requires. This also closes the double-review race:
	// the stage is re-checked inside the transition's transaction.
	ErrInvalidState = errors.New("invalid state transition")
)
