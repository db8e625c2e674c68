package embedding

import (
	"context"
	"strings"
	"sync"
	"unicode"
)

// MockModelID is reported by MockProvider.
const MockModelID = "mock"

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Vectors [][]float32
	Usage   Usage
	Err     error
}

// MockProvider serves queued responses in FIFO order. Once the queue is
// drained it embeds each text as its letter histogram, so identical texts
// compare as 1 and texts with no letters in common compare as 0. Every
// request is recorded in Calls.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     [][]string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Embed(ctx context.Context, texts []string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, append([]string(nil), texts...))

	if len(m.responses) == 0 {
		return letterHistograms(texts), nil
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{Vectors: resp.Vectors, Usage: resp.Usage, Model: MockModelID}, nil
}

func (m *MockProvider) ModelID() string {
	return MockModelID
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Embed calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func letterHistograms(texts []string) *Response {
	vectors := make([][]float32, len(texts))
	tokens := 0
	for i, t := range texts {
		v := make([]float32, 26)
		for _, r := range strings.ToLower(t) {
			if r >= 'a' && r <= 'z' {
				v[r-'a']++
			}
		}
		vectors[i] = v
		tokens += len(strings.FieldsFunc(t, unicode.IsSpace))
	}
	return &Response{Vectors: vectors, Model: MockModelID, Usage: Usage{InputTokens: tokens}}
}
