package evaluator

import (
	"regexp"
	"strings"
)

// ConceptRule maps a reference-answer pattern to the key terms a good
// answer should mention.
type ConceptRule struct {
	Name  string
	Match func(lowerRef string) bool
	Terms []string
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func containsAll(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if !strings.Contains(s, sub) {
				return false
			}
		}
		return true
	}
}

// DefaultConceptRules returns the concept-term table in priority order.
// The first rule whose pattern matches the lowercased reference wins.
func DefaultConceptRules() []ConceptRule {
	return []ConceptRule{
		{"hash table", containsAny("hash table"), []string{"hash", "bucket", "collision", "o(1)"}},
		{"time complexity", containsAny("time complexity"), []string{"o(", "complexity", "runtime", "scale"}},
		{"tcp/udp", containsAny("tcp", "udp"), []string{"tcp", "udp", "reliable", "connection", "speed"}},
		{"recursion", containsAny("recursion"), []string{"base case", "stack", "function calls", "iterative"}},
		{"closure", containsAny("closure"), []string{"enclosing scope", "private", "function factory"}},
		{"garbage collection", containsAny("garbage collection"), []string{"reference counting", "memory", "cyclic", "free"}},
		{"api gateway", containsAny("api gateway"), []string{"microservices", "routing", "authentication", "entry point"}},
		{"cap theorem", containsAny("cap theorem"), []string{"consistency", "availability", "partition tolerance"}},
		{"authentication", containsAny("authentication"), []string{"identity", "login", "authorization", "permissions"}},
		{"global state", containsAny("global state"), []string{"mutable", "bug", "test", "pure function"}},
		{"lazy loading", containsAny("lazy loading"), []string{"delay", "performance", "memory", "initialize"}},
		{"https", containsAny("https"), []string{"tls", "ssl", "encrypt", "certificate", "man-in-the-middle"}},
		{"process/thread", containsAll("process", "thread"), []string{"memory space", "isolation", "lightweight", "race condition"}},
		{"sql query", containsAny("sql query"), []string{"explain", "index", "slow query", "profiler"}},
	}
}

var longWord = regexp.MustCompile(`\b\w{4,}\b`)

// ConceptTerms returns the key terms for a reference answer using rules,
// falling back to the reference's distinct words of four or more characters.
func ConceptTerms(rules []ConceptRule, reference string) []string {
	lower := strings.ToLower(reference)
	for _, r := range rules {
		if r.Match(lower) {
			return r.Terms
		}
	}

	var terms []string
	seen := make(map[string]bool)
	for _, w := range longWord.FindAllString(lower, -1) {
		if !seen[w] {
			seen[w] = true
			terms = append(terms, w)
		}
	}
	return terms
}

// MatchTerms splits terms into those that appear as substrings of the
// lowercased answer and those that don't, preserving term order.
func MatchTerms(terms []string, answer string) (matched, missing []string) {
	lower := strings.ToLower(answer)
	matched = []string{}
	missing = []string{}
	for _, t := range terms {
		if strings.Contains(lower, t) {
			matched = append(matched, t)
		} else {
			missing = append(missing, t)
		}
	}
	return matched, missing
}
