// Package wordcount counts the words of markup files matched by a glob
// pattern in the current working tree.
package wordcount

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Extractor turns one markup file into a word count.
type Extractor interface {
	CountWords(ctx context.Context, path string) (int, error)
}

// Compile-time interface conformance checks.
var (
	_ Extractor = (*CommandExtractor)(nil)
	_ Extractor = (*PlainExtractor)(nil)
)

// Extractor tool names.
const (
	ToolDetex = "detex"
	ToolPlain = "plain"
)

// ExtractionError reports that the extraction filter failed on one file.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract words from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// CommandContext builds the extraction subprocess. Tests may replace it.
var CommandContext = exec.CommandContext

// CommandExtractor runs an external filter that prints one word per line
// and counts its output lines.
type CommandExtractor struct {
	Command string
	Args    []string // placed before the file path
}

// NewDetexExtractor returns the detex filter in word-per-line mode with
// line-number noise suppressed.
func NewDetexExtractor() *CommandExtractor {
	return &CommandExtractor{Command: "detex", Args: []string{"-n", "-w"}}
}

// CountWords runs the filter on path.
func (e *CommandExtractor) CountWords(ctx context.Context, path string) (int, error) {
	args := make([]string, 0, len(e.Args)+1)
	args = append(args, e.Args...)
	args = append(args, path)

	cmd := CommandContext(ctx, e.Command, args...)
	ob := &bytes.Buffer{}
	eb := &bytes.Buffer{}
	cmd.Stdout = ob
	cmd.Stderr = eb

	if err := cmd.Run(); err != nil {
		return 0, &ExtractionError{
			Path: path,
			Err:  fmt.Errorf("%s: %w: %s", e.Command, err, strings.TrimSpace(eb.String())),
		}
	}
	n, err := countLines(ob)
	if err != nil {
		return 0, &ExtractionError{Path: path, Err: err}
	}
	return n, nil
}

// PlainExtractor counts whitespace-delimited tokens of the raw file,
// markup included.
type PlainExtractor struct{}

func (PlainExtractor) CountWords(_ context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, &ExtractionError{Path: path, Err: err}
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(bufio.ScanWords)
	n := 0
	for scanner.Scan() {
		n++
	}
	if err := scanner.Err(); err != nil {
		return 0, &ExtractionError{Path: path, Err: err}
	}
	return n, nil
}

// NewExtractor builds the extractor named by tool. For ToolDetex a non-empty
// command or args replace the defaults.
func NewExtractor(tool, command string, args []string) (Extractor, error) {
	switch tool {
	case "", ToolDetex:
		ext := NewDetexExtractor()
		if command != "" {
			ext.Command = command
		}
		if args != nil {
			ext.Args = args
		}
		return ext, nil
	case ToolPlain:
		return PlainExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q (expected %s or %s)", tool, ToolDetex, ToolPlain)
	}
}

// countLines counts lines the way a line splitter would: a trailing
// newline does not start an extra empty line.
func countLines(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
	}
	return n, scanner.Err()
}
