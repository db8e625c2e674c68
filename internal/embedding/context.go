package embedding

import "context"

// Purpose labels why a text was embedded. It is carried on the context so
// the logging decorator can attribute usage without widening Provider.
type Purpose string

const (
	PurposeUnknown         Purpose = "unknown"
	PurposeAnswerReference Purpose = "answer_reference"
	PurposeAnswerQuestion  Purpose = "answer_question"
)

type purposeKey struct{}

// WithPurpose attaches p to ctx.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the purpose attached to ctx, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
