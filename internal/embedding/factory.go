package embedding

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/interviz/internal/store"
)

// NewProvider creates a Provider from configuration. The returned provider
// is lazy: the client is built on first use and wrapped with the cache,
// retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *zap.Logger) (*LazyProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factory := func(ctx context.Context) (Provider, error) {
		base, err := newBaseProvider(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
		}

		// caller → lazy → cache → retry → logging → base
		logged := WithLogging(base, cfg.Provider, eventRepo, log)
		retried := WithRetry(logged, cfg.Retry)
		return WithCache(retried, cfg.CacheSize, cfg.Timeout), nil
	}

	return Lazy(cfg.ResolvedModel(), factory), nil
}

func newBaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		oc := cfg.OpenAI
		oc.Model = firstNonEmpty(cfg.Model, oc.Model)
		return NewOpenAIProvider(oc)
	case "gemini":
		gc := cfg.Gemini
		gc.Model = firstNonEmpty(cfg.Model, gc.Model)
		return NewGeminiProvider(ctx, gc)
	case "local":
		return NewLocalProvider(cfg.Local)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
}
