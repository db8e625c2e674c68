// Package corpus loads the static interview question corpus.
package corpus

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:embed questions.json
var defaultCorpus []byte

// Corpus is an immutable, ordered set of question categories.
// It is safe for concurrent use once built.
type Corpus struct {
	order      []string
	byCategory map[string][]Question
	byText     map[string]Question
}

// Default returns the corpus embedded in the binary.
func Default() (*Corpus, error) {
	c, err := Parse(defaultCorpus)
	if err != nil {
		return nil, fmt.Errorf("embedded corpus: %w", err)
	}
	return c, nil
}

// Load reads a corpus file. JSON and YAML are both accepted.
// An empty path returns the embedded default corpus.
func Load(path string) (*Corpus, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a corpus from a JSON or YAML document. JSON is read as YAML
// flow syntax. Category order follows the order of keys in the document.
func Parse(data []byte) (*Corpus, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("corpus is empty")
	}

	order, doc, err := decodeDocument(trimmed)
	if err != nil {
		return nil, err
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	c := &Corpus{
		byCategory: make(map[string][]Question, len(order)),
		byText:     make(map[string]Question),
	}
	for _, category := range order {
		var raws []rawQuestion
		if err := mapstructure.Decode(doc[category], &raws); err != nil {
			return nil, fmt.Errorf("decode category %q: %w", category, err)
		}
		questions, err := buildCategory(category, raws)
		if err != nil {
			return nil, err
		}
		c.order = append(c.order, category)
		c.byCategory[category] = questions
		for _, q := range questions {
			if _, seen := c.byText[q.Text]; !seen {
				c.byText[q.Text] = q
			}
		}
	}
	return c, nil
}

func buildCategory(category string, raws []rawQuestion) ([]Question, error) {
	seen := make(map[string]bool, len(raws))
	out := make([]Question, 0, len(raws))
	for i, r := range raws {
		text := strings.TrimSpace(r.Question)
		if text == "" {
			return nil, fmt.Errorf("category %q entry %d: question text is empty", category, i)
		}
		if seen[text] {
			return nil, fmt.Errorf("category %q: duplicate question %q", category, text)
		}
		seen[text] = true
		out = append(out, Question{
			Category:  category,
			Text:      text,
			Reference: strings.TrimSpace(r.reference()),
			Keywords:  r.Keywords,
		})
	}
	return out, nil
}

// decodeDocument decodes a top-level mapping, keeping key order.
func decodeDocument(data []byte) ([]string, map[string]any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("parse corpus: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil, errors.New("corpus is empty")
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, nil, errors.New("corpus must be a mapping of categories")
	}

	var order []string
	doc := make(map[string]any, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i].Value
		var v any
		if err := m.Content[i+1].Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("parse corpus category %q: %w", key, err)
		}
		if _, dup := doc[key]; !dup {
			order = append(order, key)
		}
		doc[key] = v
	}
	return order, doc, nil
}

// Categories returns category names in corpus order.
func (c *Corpus) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Questions returns the questions of a category. The returned slice must not
// be modified.
func (c *Corpus) Questions(category string) ([]Question, bool) {
	qs, ok := c.byCategory[category]
	return qs, ok
}

// All returns every question in corpus order.
func (c *Corpus) All() []Question {
	var out []Question
	for _, category := range c.order {
		out = append(out, c.byCategory[category]...)
	}
	return out
}

// Lookup finds a question by its exact text. When the same text appears in
// more than one category the first occurrence wins.
func (c *Corpus) Lookup(text string) (Question, bool) {
	q, ok := c.byText[strings.TrimSpace(text)]
	return q, ok
}

// Reference returns the reference answer for a question text, or false when
// the question is unknown or has no reference.
func (c *Corpus) Reference(text string) (string, bool) {
	q, ok := c.Lookup(text)
	if !ok || !q.HasReference() {
		return "", false
	}
	return q.Reference, true
}

// Len returns the total number of questions across all categories.
func (c *Corpus) Len() int {
	n := 0
	for _, qs := range c.byCategory {
		n += len(qs)
	}
	return n
}
