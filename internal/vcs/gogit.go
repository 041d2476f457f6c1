package vcs

import (
	"context"
	"errors"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGit implements Client in-process with go-git.
type GoGit struct {
	repo *git.Repository
}

// OpenGoGit opens the repository containing dir.
func OpenGoGit(dir string) (*GoGit, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, &RepositoryStateError{Op: "open", Ref: dir, Err: err}
	}
	return &GoGit{repo: repo}, nil
}

func (g *GoGit) CurrentBranch(_ context.Context) (string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return "", &RepositoryStateError{Op: "current branch", Err: err}
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return head.Hash().String(), nil
}

func (g *GoGit) Checkout(_ context.Context, ref string) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return &RepositoryStateError{Op: "checkout", Ref: ref, Err: err}
	}

	opts := &git.CheckoutOptions{}
	branch := plumbing.NewBranchReferenceName(ref)
	if _, err := g.repo.Reference(branch, true); err == nil {
		opts.Branch = branch
	} else {
		hash, err := g.repo.ResolveRevision(plumbing.Revision(ref))
		if err != nil {
			return &RepositoryStateError{Op: "checkout", Ref: ref, Err: err}
		}
		opts.Hash = *hash
	}

	if err := wt.Checkout(opts); err != nil {
		return &RepositoryStateError{Op: "checkout", Ref: ref, Err: err}
	}
	return nil
}

func (g *GoGit) ListCommits(ctx context.Context) ([]string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return nil, &RepositoryStateError{Op: "list commits", Err: err}
	}

	// Committer-time order matches the default order of `git log`.
	cIter, err := g.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, &RepositoryStateError{Op: "list commits", Err: err}
	}
	defer cIter.Close()

	var hashes []string
	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		hashes = append(hashes, c.Hash.String())
		return nil
	})
	if err != nil {
		return nil, &RepositoryStateError{Op: "list commits", Err: err}
	}
	return hashes, nil
}

func (g *GoGit) CommitTimestamp(_ context.Context) (int64, error) {
	head, err := g.repo.Head()
	if err != nil {
		return 0, &RepositoryStateError{Op: "commit timestamp", Err: err}
	}
	c, err := g.repo.CommitObject(head.Hash())
	if err != nil {
		return 0, &RepositoryStateError{Op: "commit timestamp", Ref: head.Hash().String(), Err: err}
	}
	return c.Committer.When.Unix(), nil
}

// IsNotRepository reports whether err means dir holds no git repository.
func IsNotRepository(err error) bool {
	return errors.Is(err, git.ErrRepositoryNotExists)
}
