package session

import (
	"github.com/Chirchirp/Interview-Coach/internal/report"
)

// planDoneMsg is sent when the interview plan call finishes. On failure
// the screen offers a retry or the built-in question bank.
type planDoneMsg struct {
	Err error
}

// hintMsg is sent when a hint request finishes. The hint itself lands on
// the session state; the message carries only the failure.
type hintMsg struct {
	Err error
}

// gradeDoneMsg is sent when grading finishes. On failure the answer is
// retained and the screen returns to the question for a retry.
type gradeDoneMsg struct {
	Err error
}

// chatDoneMsg is sent when a discussion exchange finishes.
type chatDoneMsg struct {
	Err error
}

// reportDoneMsg is sent when the session report is compiled.
type reportDoneMsg struct {
	Report *report.Report
	Err    error
}

// endConfirmedMsg triggers the end-early flow after the confirm dialog.
type endConfirmedMsg struct{}
