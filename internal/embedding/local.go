package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/abhisek/interviz/internal/concept"
)

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// LocalProvider embeds text offline by hashing words into a fixed number of
// buckets. Scores are weaker than a trained model but stable and free.
type LocalProvider struct {
	dims int
}

// NewLocalProvider creates a hashing embedder with the given dimensions.
func NewLocalProvider(cfg LocalConfig) (*LocalProvider, error) {
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("local embedding dimensions must be positive, got %d", cfg.Dimensions)
	}
	return &LocalProvider{dims: cfg.Dimensions}, nil
}

func (p *LocalProvider) Embed(ctx context.Context, texts []string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(texts))
	tokens := 0
	for i, t := range texts {
		var n int
		vectors[i], n = p.vector(t)
		tokens += n
	}

	return &Response{
		Vectors: vectors,
		Model:   p.ModelID(),
		Usage:   Usage{InputTokens: tokens},
	}, nil
}

// vector builds a sublinear term-frequency vector over hashed buckets.
// Stopwords are skipped so shared filler does not inflate similarity.
func (p *LocalProvider) vector(text string) ([]float32, int) {
	counts := make([]float64, p.dims)
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	for _, w := range words {
		if concept.IsStopword(w) {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(w))
		counts[h.Sum32()%uint32(p.dims)]++
	}

	v := make([]float32, p.dims)
	for i, c := range counts {
		if c > 0 {
			v[i] = float32(1 + math.Log(c))
		}
	}
	return v, len(words)
}

func (p *LocalProvider) ModelID() string {
	return localModelID(p.dims)
}

func localModelID(dims int) string {
	return fmt.Sprintf("local-hash-%d", dims)
}
