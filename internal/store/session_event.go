package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events (
		sequence, timestamp, session_id, kind, questions_answered, overall_score
	) VALUES (?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.SessionID, data.Kind,
		data.QuestionsAnswered, data.OverallScore,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// QuerySessionSummaries folds each session's "started" event together with
// its terminal event, if one exists. Sessions that were started but never
// finished keep the "started" kind and a zero EndedAt.
func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error) {
	q := `SELECT s.session_id, s.timestamp,
		COALESCE(f.kind, s.kind),
		COALESCE(f.questions_answered, 0),
		COALESCE(f.overall_score, 0),
		f.timestamp
	FROM session_events s
	LEFT JOIN session_events f ON f.session_id = s.session_id AND f.kind <> ?
	WHERE s.kind = ?`
	args := []any{SessionStarted, SessionStarted}

	if where, wargs := opts.where("s."); where != "" {
		q += " AND " + where
		args = append(args, wargs...)
	}
	q += " ORDER BY s.sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var sums []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var ended sql.NullTime
		err := rows.Scan(&sum.SessionID, &sum.StartedAt, &sum.Kind,
			&sum.QuestionsAnswered, &sum.OverallScore, &ended)
		if err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		if ended.Valid {
			sum.EndedAt = ended.Time
		}
		sums = append(sums, sum)
	}
	return sums, rows.Err()
}
