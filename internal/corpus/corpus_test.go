package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	want := []string{"technical", "programming", "system_design", "behavioral"}
	got := c.Categories()
	if len(got) != len(want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	tech, ok := c.Questions("technical")
	if !ok {
		t.Fatal("technical category missing")
	}
	if len(tech) != 5 {
		t.Errorf("technical has %d questions, want 5", len(tech))
	}
	for _, q := range tech {
		if q.Category != "technical" {
			t.Errorf("question %q has category %q", q.Text, q.Category)
		}
		if !q.HasReference() {
			t.Errorf("question %q has no reference", q.Text)
		}
	}

	if c.Len() != len(c.All()) {
		t.Errorf("Len = %d, All = %d", c.Len(), len(c.All()))
	}
}

func TestReference(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	ref, ok := c.Reference("Explain how a hash table works.")
	if !ok {
		t.Fatal("expected reference for hash table question")
	}
	if !strings.Contains(strings.ToLower(ref), "hash table") {
		t.Errorf("unexpected reference: %q", ref)
	}

	if _, ok := c.Reference("Why do you want to work here?"); ok {
		t.Error("expected no reference for question with empty reference")
	}
	if _, ok := c.Reference("Not a corpus question"); ok {
		t.Error("expected no reference for unknown question")
	}
}

func TestParse_JSONKeepsOrderAndAcceptsIdealAnswer(t *testing.T) {
	data := []byte(`{
  "zeta": [{"question": "Q1?", "ideal_answer": "A1"}],
  "alpha": [{"question": "Q2?", "reference_answer": "A2", "keywords": ["k"]}]
}`)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cats := c.Categories()
	if len(cats) != 2 || cats[0] != "zeta" || cats[1] != "alpha" {
		t.Fatalf("Categories = %v, want [zeta alpha]", cats)
	}
	if ref, _ := c.Reference("Q1?"); ref != "A1" {
		t.Errorf("Reference(Q1?) = %q, want A1", ref)
	}
	q, ok := c.Lookup("Q2?")
	if !ok {
		t.Fatal("Lookup(Q2?) failed")
	}
	if q.Reference != "A2" || len(q.Keywords) != 1 || q.Keywords[0] != "k" {
		t.Errorf("unexpected question: %+v", q)
	}
}

func TestParse_JSONEscapesAndCompactForm(t *testing.T) {
	data := []byte(`{"general":[{"question":"Say \"caf\u00e9\"?","reference_answer":"line one\nline two"}]}`)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ref, ok := c.Reference(`Say "café"?`)
	if !ok {
		t.Fatalf("escaped question not found, categories %v", c.Categories())
	}
	if ref != "line one\nline two" {
		t.Errorf("Reference = %q", ref)
	}
}

func TestParse_JSONNotAnObject(t *testing.T) {
	if _, err := Parse([]byte(`["technical"]`)); err == nil {
		t.Fatal("expected error for a top-level array")
	}
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
technical:
  - question: What is a mutex?
    reference_answer: A mutex guards shared state.
behavioral:
  - question: Tell me about yourself.
`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cats := c.Categories()
	if len(cats) != 2 || cats[0] != "technical" || cats[1] != "behavioral" {
		t.Fatalf("Categories = %v", cats)
	}
	if _, ok := c.Reference("Tell me about yourself."); ok {
		t.Error("expected no reference")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"array", `[1, 2]`},
		{"no categories", `{}`},
		{"missing question", `{"c": [{"reference_answer": "x"}]}`},
		{"empty question", `{"c": [{"question": ""}]}`},
		{"blank question", `{"c": [{"question": "   "}]}`},
		{"wrong type", `{"c": "not a list"}`},
		{"duplicate", `{"c": [{"question": "Q"}, {"question": "Q"}]}`},
		{"yaml scalar", `just text`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tc.data)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yaml")
	if err := os.WriteFile(path, []byte("c:\n  - question: Q?\n    reference_answer: R\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	def, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if def.Len() == 0 {
		t.Error("expected embedded corpus for empty path")
	}
}
