// Package concept maps question text to a short concept key used to bucket
// score history.
package concept

import (
	"regexp"
	"strings"
)

// Key is the canonical keyword for a question's topic.
type Key string

// Fallback is returned for empty input.
const Fallback Key = "general"

// MinTokenLength is the shortest token that can become a concept key.
const MinTokenLength = 3

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// stopwords are question-framing words that never name a topic.
var stopwords = map[string]bool{
	"what": true, "why": true, "how": true, "when": true, "where": true,
	"who": true, "whom": true, "is": true, "are": true, "the": true,
	"a": true, "an": true, "and": true, "or": true, "to": true,
	"of": true, "in": true, "on": true, "for": true, "with": true,
	"does": true, "do": true, "you": true, "your": true, "explain": true,
	"describe": true, "difference": true, "between": true, "give": true,
	"example": true, "examples": true, "tell": true, "me": true,
	"about": true, "that": true, "this": true, "it": true, "be": true,
	"as": true, "at": true, "by": true, "from": true,
}

// Extract returns the concept key for a question.
//
// The text is lowercased, punctuation becomes whitespace, and the first token
// that is not a stopword and has at least MinTokenLength characters wins.
// If nothing survives the filter the first raw token is used, and empty input
// yields Fallback.
func Extract(questionText string) Key {
	cleaned := nonAlnum.ReplaceAllString(strings.ToLower(questionText), " ")
	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return Fallback
	}
	for _, w := range words {
		if len(w) >= MinTokenLength && !stopwords[w] {
			return Key(w)
		}
	}
	return Key(words[0])
}

// IsStopword reports whether w is in the stopword set.
func IsStopword(w string) bool {
	return stopwords[strings.ToLower(w)]
}
