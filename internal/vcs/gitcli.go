package vcs

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CommandContext builds the git subprocess. Tests may replace it.
var CommandContext = exec.CommandContext

// GitCLI implements Client by running the git command line tool.
type GitCLI struct {
	dir string
}

// NewGitCLI returns a client running git in dir. An empty dir means the
// process working directory.
func NewGitCLI(dir string) *GitCLI {
	return &GitCLI{dir: dir}
}

func (g *GitCLI) CurrentBranch(ctx context.Context) (string, error) {
	out, err := g.call(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", &RepositoryStateError{Op: "current branch", Err: err}
	}
	branch := trimOutput(out)
	if branch != "HEAD" {
		return branch, nil
	}

	// Detached HEAD: checking out "HEAD" later would be a no-op, so pin the hash.
	out, err = g.call(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", &RepositoryStateError{Op: "current branch", Err: err}
	}
	return trimOutput(out), nil
}

func (g *GitCLI) Checkout(ctx context.Context, ref string) error {
	if _, err := g.call(ctx, "checkout", "-q", ref, "--"); err != nil {
		return &RepositoryStateError{Op: "checkout", Ref: ref, Err: err}
	}
	return nil
}

func (g *GitCLI) ListCommits(ctx context.Context) ([]string, error) {
	out, err := g.call(ctx, "log", "--no-color", "--format=%H")
	if err != nil {
		return nil, &RepositoryStateError{Op: "list commits", Err: err}
	}
	return parseCommitList(out), nil
}

func (g *GitCLI) CommitTimestamp(ctx context.Context) (int64, error) {
	out, err := g.call(ctx, "show", "-s", "--format=%ct", "HEAD")
	if err != nil {
		return 0, &RepositoryStateError{Op: "commit timestamp", Err: err}
	}
	ts, err := parseTimestamp(out)
	if err != nil {
		return 0, &RepositoryStateError{Op: "commit timestamp", Err: err}
	}
	return ts, nil
}

func (g *GitCLI) call(ctx context.Context, args ...string) ([]byte, error) {
	cmd := CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir

	eb := &bytes.Buffer{}
	ob := &bytes.Buffer{}
	cmd.Stderr = eb
	cmd.Stdout = ob

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(eb.String()))
	}
	return ob.Bytes(), nil
}

// parseCommitList splits git log output into hashes, tolerating the quoted
// form produced by --format="%H".
func parseCommitList(out []byte) []string {
	var hashes []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		h := strings.Trim(strings.TrimSpace(scanner.Text()), `"`)
		if h == "" {
			continue
		}
		hashes = append(hashes, h)
	}
	return hashes
}

func parseTimestamp(out []byte) (int64, error) {
	s := trimOutput(out)
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse commit timestamp %q: %w", s, err)
	}
	return ts, nil
}

func trimOutput(out []byte) string {
	return strings.Trim(strings.TrimSpace(string(out)), `"`)
}
