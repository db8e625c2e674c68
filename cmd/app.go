package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/interviz/internal/coach"
	"github.com/abhisek/interviz/internal/config"
	"github.com/abhisek/interviz/internal/corpus"
	"github.com/abhisek/interviz/internal/embedding"
	"github.com/abhisek/interviz/internal/evaluator"
	"github.com/abhisek/interviz/internal/logger"
	"github.com/abhisek/interviz/internal/profile"
	"github.com/abhisek/interviz/internal/selector"
	"github.com/abhisek/interviz/internal/store"
)

// app holds the wired services shared by serve and practice.
type app struct {
	coach    *coach.Service
	provider *embedding.LazyProvider
	events   store.EventRepo
	close    func() error
}

// resolveDBPath returns the configured path, falling back to INTERVIZ_DB
// and then the default XDG location.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}

// openEvents opens the event log, or a no-op log when disabled.
func openEvents(cfg *config.Config) (store.EventRepo, func() error, error) {
	if cfg.DB.Disabled {
		return store.NopRepo{}, func() error { return nil }, nil
	}
	path, err := resolveDBPath(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st.EventRepo(), st.Close, nil
}

// buildApp wires the corpus, embedding provider, evaluator, profiles and
// selector into a coach service.
func buildApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	c, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	events, closeEvents, err := openEvents(cfg)
	if err != nil {
		return nil, err
	}

	provider, err := embedding.NewProvider(ctx, cfg.Embedding, events, log)
	if err != nil {
		_ = closeEvents()
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	svc, err := coach.New(coach.Deps{
		Corpus:    c,
		Profiles:  profile.NewMemoryStore(c),
		Selector:  selector.New(cfg.Selector, nil),
		Evaluator: evaluator.New(embedding.NewComparer(provider), cfg.Evaluator(), log),
		Events:    events,
		Logger:    log,
	})
	if err != nil {
		_ = closeEvents()
		return nil, err
	}

	log.Info("coach ready",
		zap.Int("questions", c.Len()),
		zap.Strings("categories", c.Categories()),
		zap.String(logger.FieldProvider, cfg.Embedding.Provider),
		zap.String(logger.FieldModel, provider.ModelID()),
	)

	return &app{coach: svc, provider: provider, events: events, close: closeEvents}, nil
}
