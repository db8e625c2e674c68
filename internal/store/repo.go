package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	UserID string    // evaluations only; empty = all users
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// EmbeddingRequestEventData captures a single embedding provider call.
type EmbeddingRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputCount   int
	InputTokens  int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EmbeddingRequestRecord is a stored embedding request event.
type EmbeddingRequestRecord struct {
	ID        int
	Timestamp time.Time
	EmbeddingRequestEventData
}

// EmbeddingModelUsage aggregates embedding calls for one model.
type EmbeddingModelUsage struct {
	Model        string
	Calls        int
	Failures     int
	Inputs       int
	InputTokens  int
	AvgLatencyMs int64
}

// EvaluationEventData captures one scored answer.
type EvaluationEventData struct {
	UserID   string
	Question string
	Concept  string
	Gate     string
	Score    float64
	Coverage float64
	// Recorded is true when the score entered the user's weakness profile.
	Recorded bool
}

// EvaluationRecord is a stored evaluation event.
type EvaluationRecord struct {
	ID        int
	Timestamp time.Time
	EvaluationEventData
}

// EventRepo provides append and query access to the audit log.
type EventRepo interface {
	// AppendEmbeddingRequest records an embedding provider call.
	AppendEmbeddingRequest(ctx context.Context, data EmbeddingRequestEventData) error

	// AppendEvaluation records a scored answer.
	AppendEvaluation(ctx context.Context, data EvaluationEventData) error

	// QueryEvaluations returns evaluation events, newest first.
	QueryEvaluations(ctx context.Context, opts QueryOpts) ([]EvaluationRecord, error)

	// QueryEmbeddingRequests returns embedding request events, newest first.
	QueryEmbeddingRequests(ctx context.Context, opts QueryOpts) ([]EmbeddingRequestRecord, error)

	// EmbeddingUsageByModel aggregates embedding calls per model.
	EmbeddingUsageByModel(ctx context.Context) ([]EmbeddingModelUsage, error)
}
