package scoring

import "fmt"

// StructuralError marks a malformed subject. It is produced by an analyzer's
// pre-validation step before any probe is scheduled and is the only failure
// mode that escapes to the caller; probe-level failures are absorbed into
// the score.
type StructuralError struct {
	Field  string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Structural builds a StructuralError.
func Structural(field, reason string) *StructuralError {
	return &StructuralError{Field: field, Reason: reason}
}
