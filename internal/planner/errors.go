package planner

import "fmt"

// PlanError signals the provider returned a plan that failed parsing or
// semantic validation. The caller decides between retrying and using the
// built-in Fallback bank; a short plan is never padded or truncated.
type PlanError struct {
	Err error
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("plan generation: %v", e.Err)
}

func (e *PlanError) Unwrap() error {
	return e.Err
}
