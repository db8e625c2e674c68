package embedding

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/interviz/internal/logger"
	"github.com/abhisek/interviz/internal/store"
)

// LoggingProvider is a decorator that records every embedding request as an
// event and a debug log line.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	log       *zap.Logger
}

// WithLogging wraps a Provider with event logging. A nil repo or logger
// disables that sink.
func WithLogging(p Provider, provider string, repo store.EventRepo, log *zap.Logger) Provider {
	if repo == nil {
		repo = store.NopRepo{}
	}
	return &LoggingProvider{
		inner:     p,
		provider:  provider,
		eventRepo: repo,
		log:       logger.WithCommonFields(log, provider, p.ModelID()),
	}
}

func (l *LoggingProvider) Embed(ctx context.Context, texts []string) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Embed(ctx, texts)

	latency := time.Since(start)

	data := store.EmbeddingRequestEventData{
		Provider:   l.provider,
		Model:      l.inner.ModelID(),
		Purpose:    string(purpose),
		InputCount: len(texts),
		LatencyMs:  latency.Milliseconds(),
		Success:    err == nil,
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}

	fields := []zap.Field{
		zap.String("purpose", string(purpose)),
		zap.Int("inputs", len(texts)),
		zap.Duration("latency", latency),
	}
	if len(texts) > 0 {
		fields = append(fields, zap.String("first_input", logger.TruncateForLog(texts[0], 60)))
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("embedding request failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Debug("embedding request", append(fields, zap.Int("input_tokens", data.InputTokens))...)
	}

	// The event is best effort; a logging failure never fails the request.
	if logErr := l.eventRepo.AppendEmbeddingRequest(ctx, data); logErr != nil {
		l.log.Warn("failed to log embedding request event", zap.Error(logErr))
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
