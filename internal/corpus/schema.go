package corpus

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://interviz/corpus.json"

// corpusSchema describes the corpus file: a non-empty object mapping category
// names to arrays of question entries.
const corpusSchema = `{
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {
    "type": "array",
    "minItems": 1,
    "items": {
      "type": "object",
      "required": ["question"],
      "properties": {
        "question": {"type": "string", "minLength": 1},
        "reference_answer": {"type": "string"},
        "ideal_answer": {"type": "string"},
        "keywords": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(corpusSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse corpus schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add corpus schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a generic decoded corpus document against the
// corpus schema.
func validateDocument(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("corpus schema validation failed: %w", err)
	}
	return nil
}
