package wordcount

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestCountLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "Empty", input: "", want: 0},
		{name: "OneWordNoNewline", input: "word", want: 1},
		{name: "TrailingNewline", input: "alpha\nbeta\n", want: 2},
		{name: "CRLF", input: "alpha\r\nbeta\r\n", want: 2},
		{name: "BlankLineCounts", input: "alpha\n\nbeta\n", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := countLines(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("countLines: %v", err)
			}
			if got != tt.want {
				t.Fatalf("countLines(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainExtractor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.tex")
	content := "\\section{Intro}\nHello   world,\tthis is\n\n a test.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := PlainExtractor{}.CountWords(context.Background(), path)
	if err != nil {
		t.Fatalf("CountWords: %v", err)
	}
	if got != 7 {
		t.Fatalf("CountWords = %d, want 7", got)
	}
}

func TestPlainExtractor_MissingFile(t *testing.T) {
	_, err := PlainExtractor{}.CountWords(context.Background(), filepath.Join(t.TempDir(), "absent.tex"))
	var xErr *ExtractionError
	if !errors.As(err, &xErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestCommandExtractor_CountsOutputLines(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ext := &CommandExtractor{Command: "cat"}
	got, err := ext.CountWords(context.Background(), path)
	if err != nil {
		t.Fatalf("CountWords: %v", err)
	}
	if got != 3 {
		t.Fatalf("CountWords = %d, want 3", got)
	}
}

func TestCommandExtractor_MissingBinary(t *testing.T) {
	ext := &CommandExtractor{Command: "wordhist-no-such-filter"}

	_, err := ext.CountWords(context.Background(), "doc.tex")
	var xErr *ExtractionError
	if !errors.As(err, &xErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if xErr.Path != "doc.tex" {
		t.Fatalf("Path = %q, want doc.tex", xErr.Path)
	}
}

func TestNewExtractor(t *testing.T) {
	ext, err := NewExtractor(ToolDetex, "", nil)
	if err != nil {
		t.Fatalf("NewExtractor(detex): %v", err)
	}
	detex, ok := ext.(*CommandExtractor)
	if !ok {
		t.Fatalf("NewExtractor(detex) = %T", ext)
	}
	if detex.Command != "detex" || strings.Join(detex.Args, " ") != "-n -w" {
		t.Fatalf("detex extractor = %+v", detex)
	}

	ext, err = NewExtractor(ToolDetex, "/opt/bin/detex", []string{"-w"})
	if err != nil {
		t.Fatalf("NewExtractor(custom detex): %v", err)
	}
	if c := ext.(*CommandExtractor); c.Command != "/opt/bin/detex" || len(c.Args) != 1 {
		t.Fatalf("custom detex extractor = %+v", c)
	}

	if _, err := NewExtractor(ToolPlain, "", nil); err != nil {
		t.Fatalf("NewExtractor(plain): %v", err)
	}
	if _, err := NewExtractor("pandoc", "", nil); err == nil {
		t.Fatal("expected error for unknown extractor")
	}
}
