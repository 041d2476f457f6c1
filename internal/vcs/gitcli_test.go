package vcs

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

func TestParseCommitList(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{name: "Plain", out: "aaa\nbbb\nccc\n", want: []string{"aaa", "bbb", "ccc"}},
		{name: "Quoted", out: "\"aaa\"\n\"bbb\"\n", want: []string{"aaa", "bbb"}},
		{name: "BlankLines", out: "aaa\n\n bbb \n", want: []string{"aaa", "bbb"}},
		{name: "Empty", out: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCommitList([]byte(tt.out))
			if len(got) != len(tt.want) {
				t.Fatalf("parseCommitList(%q) = %v, want %v", tt.out, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("parseCommitList(%q)[%d] = %q, want %q", tt.out, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int64
		wantErr bool
	}{
		{name: "Plain", out: "1700000000\n", want: 1700000000},
		{name: "Quoted", out: "\"1700000000\"\n", want: 1700000000},
		{name: "Garbage", out: "yesterday\n", wantErr: true},
		{name: "Empty", out: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp([]byte(tt.out))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("parseTimestamp(%q) = %d, want %d", tt.out, got, tt.want)
			}
		})
	}
}

func TestGitCLI_FailureIsRepositoryStateError(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	g := NewGitCLI(t.TempDir())

	_, err := g.ListCommits(context.Background())
	if err == nil {
		t.Fatal("expected error listing commits outside a repository")
	}
	var rse *RepositoryStateError
	if !errors.As(err, &rse) {
		t.Fatalf("error %T is not a RepositoryStateError: %v", err, err)
	}
	if rse.Op != "list commits" {
		t.Fatalf("Op = %q, want %q", rse.Op, "list commits")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	if _, err := New("svn", "."); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestGitCLI_CheckoutSeparatesRefFromPaths(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true binary not available")
	}
	var got []string
	orig := CommandContext
	CommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		got = args
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { CommandContext = orig })

	if err := NewGitCLI(t.TempDir()).Checkout(context.Background(), "doc.tex"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	want := []string{"checkout", "-q", "doc.tex", "--"}
	if !slices.Equal(got, want) {
		t.Fatalf("git args = %q, want %q", got, want)
	}
}

func TestGitCLI_CheckoutBranchNamedLikeTrackedFile(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	repoDir, commits := createHistoryRepo(t)

	repo, err := gogit.PlainOpen(repoDir)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName("doc.tex"), plumbing.NewHash(commits[0].hash))
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("SetReference: %v", err)
	}

	g := NewGitCLI(repoDir)
	ctx := context.Background()
	if err := g.Checkout(ctx, "doc.tex"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	branch, err := g.CurrentBranch(ctx)
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "doc.tex" {
		t.Fatalf("CurrentBranch = %q, want %q", branch, "doc.tex")
	}
	ts, err := g.CommitTimestamp(ctx)
	if err != nil {
		t.Fatalf("CommitTimestamp: %v", err)
	}
	if want := commits[0].when.Truncate(time.Second).Unix(); ts != want {
		t.Fatalf("CommitTimestamp = %d, want %d", ts, want)
	}
}
