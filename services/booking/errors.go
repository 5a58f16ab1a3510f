package booking

import "fmt"

// ValidationError reports malformed or missing input. Nothing is ever
// partially applied when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports that a referenced package, provider, addon or
// booking does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports a date overlap or insufficient stock. The request is
// fully rejected, never partially committed.
type ConflictError struct {
	Message   string
	Conflicts int
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ForbiddenError reports that the actor does not own the booking or provider
// being modified.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}
