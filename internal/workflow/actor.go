package workflow

import (
	"fmt"

	"task-approval-api/internal/models"
)

// Actor is the resolved identity on whose behalf an operation runs.
// The engine never authenticates; it receives actors already verified
// by the session layer.
type Actor struct {
	Name  string
	Email string
	Role  models.SystemRole
}

// requireRole is the single authorization gate used by every restricted
// operation. It fails with ErrPermissionDenied unless the actor holds
// one of the allowed roles.
func requireRole(actor Actor, allowed ...models.SystemRole) error {
	for _, role := range allowed {
		if actor.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q may not perform this operation", ErrPermissionDenied, actor.Role)
}
