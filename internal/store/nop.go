package store

import "context"

// NopRepo is an EventRepo that discards writes and returns empty results.
// It is used when the event log is disabled.
type NopRepo struct{}

var _ EventRepo = NopRepo{}

func (NopRepo) AppendEmbeddingRequest(context.Context, EmbeddingRequestEventData) error { return nil }

func (NopRepo) AppendEvaluation(context.Context, EvaluationEventData) error { return nil }

func (NopRepo) QueryEvaluations(context.Context, QueryOpts) ([]EvaluationRecord, error) {
	return nil, nil
}

func (NopRepo) QueryEmbeddingRequests(context.Context, QueryOpts) ([]EmbeddingRequestRecord, error) {
	return nil, nil
}

func (NopRepo) EmbeddingUsageByModel(context.Context) ([]EmbeddingModelUsage, error) {
	return nil, nil
}
