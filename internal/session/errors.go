package session

import "fmt"

// PhaseError reports an operation attempted in the wrong session phase.
// The session is left exactly as it was.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("cannot %s in the %s phase", e.Op, e.Phase)
}

// ConfigError reports invalid setup input. The user must fix the named
// field and reconfigure before the session can start.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Field, e.Reason)
}
