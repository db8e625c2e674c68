package embedding

import "context"

// Provider turns text into dense vectors.
type Provider interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Response holds the provider's output.
type Response struct {
	// Vectors has the same length and order as the request texts.
	Vectors [][]float32

	// Model is the actual model that served the request.
	Model string

	// Usage reports token consumption for this request.
	Usage Usage
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens int
}

// resolveModel maps a friendly alias to a provider model id. Unknown names
// are used as-is so direct model ids keep working.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
