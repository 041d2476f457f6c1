// Package series stores word-count history as plain text, one commit
// sample per line.
package series

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Sample is the word count observed at one commit.
type Sample struct {
	Timestamp int64 // Unix seconds, committer time
	WordCount int
}

// Time returns the sample timestamp in the local time zone.
func (s Sample) Time() time.Time {
	return time.Unix(s.Timestamp, 0)
}

// MalformedSeriesFileError reports a line that is not exactly two integers.
type MalformedSeriesFileError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *MalformedSeriesFileError) Error() string {
	where := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("malformed series file %s: %q: %v", where, e.Text, e.Err)
}

func (e *MalformedSeriesFileError) Unwrap() error {
	return e.Err
}

// Write encodes samples in the given order, one "timestamp count" line each.
func Write(w io.Writer, samples []Sample) error {
	bw := bufio.NewWriter(w)
	for _, s := range samples {
		if _, err := fmt.Fprintf(bw, "%d %d\n", s.Timestamp, s.WordCount); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes samples to path, replacing any existing file.
func Save(path string, samples []Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create series file: %w", err)
	}
	if err := Write(file, samples); err != nil {
		file.Close()
		return fmt.Errorf("write series file %s: %w", path, err)
	}
	return file.Close()
}

// Read decodes samples in file order. Blank lines are skipped.
func Read(r io.Reader) ([]Sample, error) {
	var samples []Sample
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		s, err := parseLine(text)
		if err != nil {
			return nil, &MalformedSeriesFileError{Line: lineNo, Text: text, Err: err}
		}
		samples = append(samples, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// Load reads the series file at path.
func Load(path string) ([]Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series file: %w", err)
	}
	defer file.Close()

	samples, err := Read(file)
	if err != nil {
		var mErr *MalformedSeriesFileError
		if errors.As(err, &mErr) {
			mErr.Path = path
			return nil, mErr
		}
		return nil, fmt.Errorf("read series file %s: %w", path, err)
	}
	return samples, nil
}

func parseLine(text string) (Sample, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return Sample{}, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}
	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("timestamp: %w", err)
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil {
		return Sample{}, fmt.Errorf("word count: %w", err)
	}
	return Sample{Timestamp: ts, WordCount: count}, nil
}
