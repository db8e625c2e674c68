package corpus

// Question is a single interview question from the static corpus.
// Questions are read-only once the corpus is loaded.
type Question struct {
	// Category is the corpus category the question belongs to, e.g. "technical".
	Category string

	// Text is the prompt shown to the candidate. It doubles as the question's
	// identity: answers are submitted against this exact text.
	Text string

	// Reference is the model answer used for scoring. Empty when the corpus
	// carries no reference for the question.
	Reference string

	// Keywords are optional topic hints carried through from the corpus file.
	Keywords []string
}

// HasReference reports whether the question carries a reference answer.
func (q Question) HasReference() bool {
	return q.Reference != ""
}

// rawQuestion mirrors one corpus file entry.
type rawQuestion struct {
	Question        string   `mapstructure:"question"`
	ReferenceAnswer string   `mapstructure:"reference_answer"`
	IdealAnswer     string   `mapstructure:"ideal_answer"`
	Keywords        []string `mapstructure:"keywords"`
}

func (r rawQuestion) reference() string {
	if r.ReferenceAnswer != "" {
		return r.ReferenceAnswer
	}
	return r.IdealAnswer
}
