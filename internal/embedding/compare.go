package embedding

import (
	"context"
	"fmt"
	"math"
)

// Comparer scores semantic similarity between two texts.
type Comparer struct {
	provider Provider
}

// NewComparer returns a Comparer backed by p.
func NewComparer(p Provider) *Comparer {
	return &Comparer{provider: p}
}

// Similarity returns the cosine similarity of the embeddings of a and b,
// in [-1, 1].
func (c *Comparer) Similarity(ctx context.Context, a, b string) (float64, error) {
	resp, err := c.provider.Embed(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	if len(resp.Vectors) != 2 {
		return 0, &ErrInvalidResponse{Err: errVectorCount(len(resp.Vectors), 2)}
	}
	va, vb := resp.Vectors[0], resp.Vectors[1]
	if len(va) != len(vb) {
		return 0, &ErrInvalidResponse{Err: fmt.Errorf("dimension mismatch: %d vs %d", len(va), len(vb))}
	}
	return Cosine(va, vb), nil
}

// Cosine returns the cosine similarity of two equal-length vectors.
// A zero vector has similarity 0 with everything.
func Cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, sim))
}

func errVectorCount(got, want int) error {
	return fmt.Errorf("got %d embeddings for %d inputs", got, want)
}
