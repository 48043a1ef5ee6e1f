package setup

import (
	"github.com/Chirchirp/Interview-Coach/internal/session"
)

// sessionReadyMsg is sent when materials are extracted and the provider
// is built and reachable; the interview can start.
type sessionReadyMsg struct {
	driver *session.Driver
	state  *session.State
}

// setupFailedMsg is sent when extraction or provider construction fails.
// The form unlocks so the candidate can fix the offending field.
type setupFailedMsg struct {
	err error
}
