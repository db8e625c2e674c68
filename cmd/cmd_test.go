package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 8, "this is…"},
		{"héllo wörld", 6, "héllo…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestCorpusValidate_BuiltIn(t *testing.T) {
	var out bytes.Buffer
	corpusValidateCmd.SetOut(&out)
	if err := corpusValidateCmd.RunE(corpusValidateCmd, nil); err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := "ok: 19 questions in 4 categories (1 without reference answers)"
	if !strings.Contains(out.String(), want) {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestCorpusValidate_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("technical:\n  - question: \"\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := corpusValidateCmd.RunE(corpusValidateCmd, []string{path}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCorpusList(t *testing.T) {
	var out bytes.Buffer
	corpusListCmd.SetOut(&out)
	if err := corpusListCmd.RunE(corpusListCmd, nil); err != nil {
		t.Fatalf("list: %v", err)
	}
	got := out.String()
	for _, want := range []string{"technical (5)", "behavioral (4)", "closure", "Why do you want to work here?"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPracticeMenu(t *testing.T) {
	if len(practiceMenu) != 4 || practiceMenu[0] != promptNext || practiceMenu[len(practiceMenu)-1] != promptQuit {
		t.Fatalf("menu = %v", practiceMenu)
	}
	seen := make(map[string]bool)
	for _, item := range practiceMenu {
		if seen[item] {
			t.Fatalf("duplicate menu item %q", item)
		}
		seen[item] = true
	}
}
