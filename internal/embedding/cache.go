package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachingProvider memoizes vectors per input text. Concurrent requests for
// the same uncached text share a single upstream call. The shared call is
// detached from any one caller: each caller waits under its own context,
// and the upstream call is bounded by fetchTimeout instead.
type CachingProvider struct {
	inner        Provider
	size         int
	fetchTimeout time.Duration

	mu      sync.Mutex
	entries map[string][]float32
	order   []string // insertion order for FIFO eviction

	group singleflight.Group
}

// WithCache wraps a Provider with an in-memory vector cache holding up to
// size texts. fetchTimeout bounds each shared upstream call; zero leaves it
// unbounded. size <= 0 returns p unchanged.
func WithCache(p Provider, size int, fetchTimeout time.Duration) Provider {
	if size <= 0 {
		return p
	}
	return &CachingProvider{
		inner:        p,
		size:         size,
		fetchTimeout: fetchTimeout,
		entries:      make(map[string][]float32, size),
	}
}

type fetchResult struct {
	vector []float32
	tokens int
}

func (c *CachingProvider) Embed(ctx context.Context, texts []string) (*Response, error) {
	vectors := make([][]float32, len(texts))
	keys := make([]string, len(texts))
	missing := make(map[string]string) // key -> text

	c.mu.Lock()
	for i, t := range texts {
		keys[i] = cacheKey(t)
		if v, ok := c.entries[keys[i]]; ok {
			vectors[i] = v
			continue
		}
		missing[keys[i]] = t
	}
	c.mu.Unlock()

	if len(missing) == 0 {
		return &Response{Vectors: vectors, Model: c.inner.ModelID()}, nil
	}

	// Start every fetch before waiting on any of them.
	pending := make(map[string]<-chan singleflight.Result, len(missing))
	for key, text := range missing {
		pending[key] = c.group.DoChan(key, func() (any, error) {
			return c.fetch(ctx, key, text)
		})
	}

	fetched := make(map[string][]float32, len(missing))
	tokens := 0
	for key, ch := range pending {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r := <-ch:
			if r.Err != nil {
				return nil, r.Err
			}
			res := r.Val.(fetchResult)
			fetched[key] = res.vector
			if !r.Shared {
				tokens += res.tokens
			}
		}
	}

	for i := range texts {
		if vectors[i] == nil {
			vectors[i] = fetched[keys[i]]
		}
	}

	return &Response{
		Vectors: vectors,
		Model:   c.inner.ModelID(),
		Usage:   Usage{InputTokens: tokens},
	}, nil
}

// fetch embeds one text upstream and caches it. It keeps ctx values (the
// purpose label) but not its cancellation, since other callers may be
// waiting on the same result.
func (c *CachingProvider) fetch(ctx context.Context, key, text string) (any, error) {
	fctx := context.WithoutCancel(ctx)
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(fctx, c.fetchTimeout)
		defer cancel()
	}

	resp, err := c.inner.Embed(fctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(resp.Vectors) != 1 {
		return nil, &ErrInvalidResponse{Err: errVectorCount(len(resp.Vectors), 1)}
	}
	c.put(key, resp.Vectors[0])
	return fetchResult{vector: resp.Vectors[0], tokens: resp.Usage.InputTokens}, nil
}

func (c *CachingProvider) ModelID() string {
	return c.inner.ModelID()
}

// Len returns the number of cached vectors.
func (c *CachingProvider) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *CachingProvider) put(key string, v []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		return
	}
	for len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = v
	c.order = append(c.order, key)
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
