package ui

import "testing"

func TestNewHighlighter(t *testing.T) {
	h := NewHighlighter()
	if h == nil || h.style == nil {
		t.Fatal("NewHighlighter should return a highlighter with a style")
	}
}

func TestHighlightLine_PreservesText(t *testing.T) {
	h := NewHighlighter()

	line := `  "version": 1,`
	out := h.HighlightLine(line, "projects.json")
	if out == "" {
		t.Error("Highlighted line should not be empty")
	}
}

func TestHighlightLine_UnknownFileUnchanged(t *testing.T) {
	h := NewHighlighter()

	line := "some plain text"
	if out := h.HighlightLine(line, "notes.xyz123"); out != line {
		t.Errorf("Unknown file type should pass through unchanged, got %q", out)
	}
}

func TestHighlightLines(t *testing.T) {
	h := NewHighlighter()

	lines := []string{"{", `  "a": 1`, "}"}
	out := h.HighlightLines(lines, "data.json")
	if len(out) != len(lines) {
		t.Errorf("Expected %d lines, got %d", len(lines), len(out))
	}
}

func TestGetLexerForFile(t *testing.T) {
	if getLexerForFile("projects.json") == nil {
		t.Error("JSON should have a lexer")
	}
	if getLexerForFile("config.yaml") == nil {
		t.Error("YAML should have a lexer")
	}
}
