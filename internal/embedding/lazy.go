package embedding

import (
	"context"
	"sync"
	"sync/atomic"
)

// Factory builds a Provider. It may be slow (model load, client setup).
type Factory func(ctx context.Context) (Provider, error)

// LazyProvider defers building its Provider until the first Embed call.
// Concurrent first callers share one build, and each waits under its own
// context. The build runs detached from the caller that started it. A
// failed build is retried by the next caller.
type LazyProvider struct {
	model   string
	factory Factory

	mu       sync.Mutex
	building *build
	ready    atomic.Pointer[Provider]
}

type build struct {
	done chan struct{}
	p    Provider
	err  error
}

// Lazy returns a LazyProvider reporting model as its ModelID.
func Lazy(model string, factory Factory) *LazyProvider {
	return &LazyProvider{model: model, factory: factory}
}

func (l *LazyProvider) Embed(ctx context.Context, texts []string) (*Response, error) {
	p, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return p.Embed(ctx, texts)
}

func (l *LazyProvider) ModelID() string {
	return l.model
}

// Loaded reports whether the underlying provider has been built.
func (l *LazyProvider) Loaded() bool {
	return l.ready.Load() != nil
}

func (l *LazyProvider) get(ctx context.Context) (Provider, error) {
	if p := l.ready.Load(); p != nil {
		return *p, nil
	}

	l.mu.Lock()
	if p := l.ready.Load(); p != nil {
		l.mu.Unlock()
		return *p, nil
	}
	b := l.building
	if b == nil {
		b = &build{done: make(chan struct{})}
		l.building = b
		go l.run(context.WithoutCancel(ctx), b)
	}
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.done:
	}
	if b.err != nil {
		return nil, &ErrProviderUnavailable{Err: b.err}
	}
	return b.p, nil
}

func (l *LazyProvider) run(ctx context.Context, b *build) {
	p, err := l.factory(ctx)

	l.mu.Lock()
	if err == nil {
		l.ready.Store(&p)
	}
	b.p, b.err = p, err
	l.building = nil
	l.mu.Unlock()
	close(b.done)
}
