package coach

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is reported through QuestionResult.Message rather than
// returned, so callers can show it as an informational result.
var ErrUnknownCategory = errors.New("unknown category")

// InvalidCategoryMessage is the message shown for unknown categories.
const InvalidCategoryMessage = "Invalid category."

// ValidationError reports a caller mistake, such as a missing field.
// It is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func missing(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}
