package vcs

import (
	"context"
	"errors"
	"fmt"
)

// MockCommit is one commit of a MockClient history.
type MockCommit struct {
	ID        string
	Timestamp int64
}

// MockClient is a test double for Client. It keeps an in-memory history and
// records every checkout so tests can assert on traversal order and on the
// reference left checked out.
type MockClient struct {
	Branch  string
	Commits []MockCommit // newest first, as a backend reports them

	// Failure injection, keyed by ref.
	CheckoutErrors  map[string]error
	TimestampErrors map[string]error
	BranchErr       error
	ListErr         error

	head      string
	checkouts []string
}

// NewMockClient creates a MockClient on branch "main" with the given
// history, newest first.
func NewMockClient(commits ...MockCommit) *MockClient {
	return &MockClient{
		Branch:  "main",
		Commits: commits,
		head:    "main",
	}
}

// SetBranch makes name the branch checked out before any walk.
func (m *MockClient) SetBranch(name string) *MockClient {
	m.Branch = name
	m.head = name
	return m
}

// Head returns the reference currently checked out.
func (m *MockClient) Head() string {
	return m.head
}

// Checkouts returns every ref passed to Checkout, in call order.
func (m *MockClient) Checkouts() []string {
	return append([]string(nil), m.checkouts...)
}

func (m *MockClient) CurrentBranch(_ context.Context) (string, error) {
	if m.BranchErr != nil {
		return "", &RepositoryStateError{Op: "current branch", Err: m.BranchErr}
	}
	return m.head, nil
}

func (m *MockClient) Checkout(_ context.Context, ref string) error {
	m.checkouts = append(m.checkouts, ref)
	if err := m.CheckoutErrors[ref]; err != nil {
		return &RepositoryStateError{Op: "checkout", Ref: ref, Err: err}
	}
	if ref != m.Branch && m.find(ref) == nil {
		return &RepositoryStateError{Op: "checkout", Ref: ref, Err: errors.New("unknown ref")}
	}
	m.head = ref
	return nil
}

func (m *MockClient) ListCommits(_ context.Context) ([]string, error) {
	if m.ListErr != nil {
		return nil, &RepositoryStateError{Op: "list commits", Err: m.ListErr}
	}
	ids := make([]string, len(m.Commits))
	for i, c := range m.Commits {
		ids[i] = c.ID
	}
	return ids, nil
}

func (m *MockClient) CommitTimestamp(_ context.Context) (int64, error) {
	if err := m.TimestampErrors[m.head]; err != nil {
		return 0, &RepositoryStateError{Op: "commit timestamp", Ref: m.head, Err: err}
	}
	ref := m.head
	if ref == m.Branch && len(m.Commits) > 0 {
		ref = m.Commits[0].ID
	}
	c := m.find(ref)
	if c == nil {
		return 0, &RepositoryStateError{Op: "commit timestamp", Ref: m.head, Err: fmt.Errorf("no commit %q", ref)}
	}
	return c.Timestamp, nil
}

func (m *MockClient) find(id string) *MockCommit {
	for i := range m.Commits {
		if m.Commits[i].ID == id {
			return &m.Commits[i]
		}
	}
	return nil
}
