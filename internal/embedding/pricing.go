package embedding

// ModelCost holds per-million-token pricing for an embedding model.
type ModelCost struct {
	InputPerMTok float64 // USD per 1M input tokens
}

// Cost returns the USD cost of the given input tokens.
func (c ModelCost) Cost(inputTokens int) float64 {
	return float64(inputTokens) * c.InputPerMTok / 1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown. The
// local hashing embedder has no entry.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

var modelCosts = map[string]ModelCost{
	// OpenAI
	"text-embedding-3-small": {0.02},
	"text-embedding-3-large": {0.13},
	"text-embedding-ada-002": {0.10},

	// Google (Gemini)
	"gemini-embedding-001": {0.15},
	"text-embedding-004":   {0},
}
