// Package vcs abstracts the version control operations needed to replay a
// repository's history one commit at a time.
package vcs

import (
	"context"
	"fmt"
)

// Client is the capability set the history walker needs from a version
// control backend.
type Client interface {
	// CurrentBranch returns the symbolic name of the checked-out reference,
	// or the commit hash when HEAD is detached.
	CurrentBranch(ctx context.Context) (string, error)
	// Checkout switches the working tree to ref.
	Checkout(ctx context.Context, ref string) error
	// ListCommits returns commit identifiers reachable from HEAD, newest first.
	ListCommits(ctx context.Context) ([]string, error)
	// CommitTimestamp returns the committer time of HEAD as Unix seconds.
	CommitTimestamp(ctx context.Context) (int64, error)
}

// Compile-time interface conformance checks.
var (
	_ Client = (*GitCLI)(nil)
	_ Client = (*GoGit)(nil)
	_ Client = (*MockClient)(nil)
)

// Backend names accepted by New.
const (
	BackendGitCLI = "gitcli"
	BackendGoGit  = "gogit"
)

// RepositoryStateError reports that the backend could not answer a query
// about, or perform an operation on, the repository.
type RepositoryStateError struct {
	Op  string
	Ref string
	Err error
}

func (e *RepositoryStateError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("vcs: %s %q: %v", e.Op, e.Ref, e.Err)
	}
	return fmt.Sprintf("vcs: %s: %v", e.Op, e.Err)
}

func (e *RepositoryStateError) Unwrap() error {
	return e.Err
}

// New opens a client for the repository at dir using the named backend.
func New(backend, dir string) (Client, error) {
	switch backend {
	case "", BackendGitCLI:
		return NewGitCLI(dir), nil
	case BackendGoGit:
		return OpenGoGit(dir)
	default:
		return nil, fmt.Errorf("vcs: unknown backend %q (expected %s or %s)", backend, BackendGitCLI, BackendGoGit)
	}
}
