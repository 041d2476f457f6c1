package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type testCommit struct {
	hash string
	when time.Time
}

// createHistoryRepo builds a three-commit repository and returns its
// directory and the commits oldest first.
func createHistoryRepo(t *testing.T) (string, []testCommit) {
	t.Helper()
	repoDir := t.TempDir()

	repo, err := gogit.PlainInit(repoDir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	contents := []string{"one\n", "one two\n", "one two three\n"}
	var commits []testCommit
	for i, content := range contents {
		full := filepath.Join(repoDir, "doc.tex")
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := wt.Add("doc.tex"); err != nil {
			t.Fatalf("Add: %v", err)
		}
		when := base.Add(time.Duration(i) * 24 * time.Hour)
		sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
		hash, err := wt.Commit("revision", &gogit.CommitOptions{Author: sig, Committer: sig})
		if err != nil {
			t.Fatalf("Commit: %v", err)
		}
		commits = append(commits, testCommit{hash: hash.String(), when: when})
	}
	return repoDir, commits
}

func backendsFor(t *testing.T, repoDir string) map[string]Client {
	t.Helper()
	clients := map[string]Client{}

	gg, err := OpenGoGit(repoDir)
	if err != nil {
		t.Fatalf("OpenGoGit: %v", err)
	}
	clients[BackendGoGit] = gg

	if _, err := exec.LookPath("git"); err == nil {
		clients[BackendGitCLI] = NewGitCLI(repoDir)
	}
	return clients
}

func TestBackends_History(t *testing.T) {
	for name := range map[string]struct{}{BackendGoGit: {}, BackendGitCLI: {}} {
		t.Run(name, func(t *testing.T) {
			repoDir, commits := createHistoryRepo(t)
			client, ok := backendsFor(t, repoDir)[name]
			if !ok {
				t.Skipf("%s backend not available", name)
			}
			ctx := context.Background()

			branch, err := client.CurrentBranch(ctx)
			if err != nil {
				t.Fatalf("CurrentBranch: %v", err)
			}
			if branch != "master" {
				t.Fatalf("CurrentBranch = %q, want %q", branch, "master")
			}

			ids, err := client.ListCommits(ctx)
			if err != nil {
				t.Fatalf("ListCommits: %v", err)
			}
			if len(ids) != len(commits) {
				t.Fatalf("ListCommits returned %d ids, want %d", len(ids), len(commits))
			}
			for i, id := range ids {
				want := commits[len(commits)-1-i].hash
				if id != want {
					t.Fatalf("ListCommits[%d] = %s, want %s (newest first)", i, id, want)
				}
			}

			oldest := commits[0]
			if err := client.Checkout(ctx, oldest.hash); err != nil {
				t.Fatalf("Checkout(%s): %v", oldest.hash, err)
			}
			ts, err := client.CommitTimestamp(ctx)
			if err != nil {
				t.Fatalf("CommitTimestamp: %v", err)
			}
			if ts != oldest.when.Unix() {
				t.Fatalf("CommitTimestamp = %d, want %d", ts, oldest.when.Unix())
			}
			content, err := os.ReadFile(filepath.Join(repoDir, "doc.tex"))
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if string(content) != "one\n" {
				t.Fatalf("doc.tex at oldest commit = %q", content)
			}

			detached, err := client.CurrentBranch(ctx)
			if err != nil {
				t.Fatalf("CurrentBranch (detached): %v", err)
			}
			if detached != oldest.hash {
				t.Fatalf("CurrentBranch (detached) = %q, want hash %q", detached, oldest.hash)
			}

			if err := client.Checkout(ctx, "master"); err != nil {
				t.Fatalf("Checkout(master): %v", err)
			}
			branch, err = client.CurrentBranch(ctx)
			if err != nil {
				t.Fatalf("CurrentBranch: %v", err)
			}
			if branch != "master" {
				t.Fatalf("CurrentBranch after restore = %q, want master", branch)
			}
		})
	}
}

func TestOpenGoGit_NotARepository(t *testing.T) {
	_, err := OpenGoGit(t.TempDir())
	if err == nil {
		t.Fatal("expected error opening a plain directory")
	}
	if !IsNotRepository(err) {
		t.Fatalf("IsNotRepository(%v) = false", err)
	}
}
