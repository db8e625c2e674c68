package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type eventRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *eventRepo) AppendEmbeddingRequest(ctx context.Context, data EmbeddingRequestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO embedding_requests
			(ts_ms, provider, model, purpose, input_count, input_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.clock().UnixMilli(), data.Provider, data.Model, data.Purpose,
		data.InputCount, data.InputTokens, data.LatencyMs, boolToInt(data.Success), data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("append embedding request: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendEvaluation(ctx context.Context, data EvaluationEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO evaluations
			(ts_ms, user_id, question, concept, gate, score, coverage, recorded)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.clock().UnixMilli(), data.UserID, data.Question, data.Concept, data.Gate,
		data.Score, data.Coverage, boolToInt(data.Recorded),
	)
	if err != nil {
		return fmt.Errorf("append evaluation: %w", err)
	}
	return nil
}

// buildWhere renders the shared timestamp filters plus any extra clauses.
func buildWhere(opts QueryOpts, extra []string, args []any) (string, []any) {
	clauses := append([]string(nil), extra...)
	if !opts.From.IsZero() {
		clauses = append(clauses, "ts_ms >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		clauses = append(clauses, "ts_ms <= ?")
		args = append(args, opts.To.UnixMilli())
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func limitClause(opts QueryOpts) string {
	if opts.Limit > 0 {
		return fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	return ""
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
