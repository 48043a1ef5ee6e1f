package store

import (
	"context"
	"strings"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// where renders the filter conditions and their arguments. prefix qualifies
// column names when the query joins tables.
func (o QueryOpts) where(prefix string) (string, []any) {
	var conds []string
	var args []any
	if o.After > 0 {
		conds = append(conds, prefix+"sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		conds = append(conds, prefix+"sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		conds = append(conds, prefix+"timestamp >= ?")
		args = append(args, o.From.UTC())
	}
	if !o.To.IsZero() {
		conds = append(conds, prefix+"timestamp <= ?")
		args = append(args, o.To.UTC())
	}
	return strings.Join(conds, " AND "), args
}

// LLMEventData captures the data for a single LLM call event.
type LLMEventData struct {
	SessionID    string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	RequestBody  string
	ResponseBody string
	ErrorMessage string
}

// LLMEvent is a stored LLM call event.
type LLMEvent struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	SessionID    string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	RequestBody  string
	ResponseBody string
	ErrorMessage string
}

// PurposeUsage aggregates LLM calls for one request purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Session lifecycle kinds recorded in session events. A session gets one
// "started" event and at most one terminal event.
const (
	SessionStarted   = "started"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID         string
	Kind              string
	QuestionsAnswered int
	OverallScore      int
}

// SessionSummary is one interview session folded together from its
// lifecycle events.
type SessionSummary struct {
	SessionID         string
	StartedAt         time.Time
	EndedAt           time.Time // zero if the session never finished
	Kind              string    // terminal kind, or "started" while open
	QuestionsAnswered int
	OverallScore      int
}

// LLMEventRepo provides append access to the LLM call log.
type LLMEventRepo interface {
	// AppendLLMEvent records an LLM API call event.
	AppendLLMEvent(ctx context.Context, data LLMEventData) error
}

// SessionEventRepo provides append access to session lifecycle events.
type SessionEventRepo interface {
	// AppendSessionEvent records a session lifecycle transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
}

// EventRepo provides unified append and query access across all event types.
type EventRepo interface {
	LLMEventRepo
	SessionEventRepo

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event by ID, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per request purpose,
	// heaviest first.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model, heaviest first.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// QuerySessionSummaries returns one summary per session, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error)
}
