package solver

import "fmt"

// MalformedInputError is returned when the supplied catalog fails validation
// before any decision variable is built. Besides it, Solve returns only a
// ModelInvalidError or a failure of the CP-SAT call itself; modeling outcomes
// (infeasible, timed out, a MODEL_INVALID solver status) are reported through
// Result instead.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

func malformed(format string, args ...any) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}

// ModelInvalidError indicates the constructed CP-SAT model was rejected by
// the solver, which points at a builder bug rather than a modeling outcome
// the caller should see as a schedule result.
type ModelInvalidError struct {
	Reason string
}

func (e *ModelInvalidError) Error() string {
	return fmt.Sprintf("model invalid: %s", e.Reason)
}
