package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) QueryEvaluations(ctx context.Context, opts QueryOpts) ([]EvaluationRecord, error) {
	var extra []string
	var args []any
	if opts.UserID != "" {
		extra = append(extra, "user_id = ?")
		args = append(args, opts.UserID)
	}
	where, args := buildWhere(opts, extra, args)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ts_ms, user_id, question, concept, gate, score, coverage, recorded
		 FROM evaluations`+where+` ORDER BY ts_ms DESC, id DESC`+limitClause(opts), args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var out []EvaluationRecord
	for rows.Next() {
		var rec EvaluationRecord
		var ts int64
		var recorded int
		if err := rows.Scan(&rec.ID, &ts, &rec.UserID, &rec.Question, &rec.Concept,
			&rec.Gate, &rec.Score, &rec.Coverage, &recorded); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.Recorded = recorded != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) QueryEmbeddingRequests(ctx context.Context, opts QueryOpts) ([]EmbeddingRequestRecord, error) {
	where, args := buildWhere(opts, nil, nil)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ts_ms, provider, model, purpose, input_count, input_tokens, latency_ms, success, error_message
		 FROM embedding_requests`+where+` ORDER BY ts_ms DESC, id DESC`+limitClause(opts), args...)
	if err != nil {
		return nil, fmt.Errorf("query embedding requests: %w", err)
	}
	defer rows.Close()

	var out []EmbeddingRequestRecord
	for rows.Next() {
		var rec EmbeddingRequestRecord
		var ts int64
		var success int
		if err := rows.Scan(&rec.ID, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputCount, &rec.InputTokens, &rec.LatencyMs, &success, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan embedding request: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.Success = success != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) EmbeddingUsageByModel(ctx context.Context) ([]EmbeddingModelUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model,
		        COUNT(*),
		        COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(input_count), 0),
		        COALESCE(SUM(input_tokens), 0),
		        CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		 FROM embedding_requests
		 GROUP BY model
		 ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query embedding usage: %w", err)
	}
	defer rows.Close()

	var out []EmbeddingModelUsage
	for rows.Next() {
		var u EmbeddingModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.Failures, &u.Inputs, &u.InputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan embedding usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
