// Package gitops implements the workflow engine: every user intent (branch
// lifecycle, staging, committing, merging, remotes) as a synchronous
// operation over a repository path. Operations re-open the repository on
// every call; nothing holds a handle across calls.
package gitops

import (
	"fmt"
	"path/filepath"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const fallbackIdent = "grit"
const fallbackEmail = "grit@localhost"

func openRepo(repoPath string) (*gitlib.Repository, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return repo, nil
}

// ValidateRepo reports whether path points at (or inside) a git repository.
func ValidateRepo(repoPath string) error {
	if _, err := openRepo(repoPath); err != nil {
		return opErr(KindBackend, "open", repoPath, err)
	}
	return nil
}

// headCommit resolves HEAD to a commit. unborn is true when the repository
// has no commits yet, which several operations treat as a distinct state
// rather than a failure.
func headCommit(repo *gitlib.Repository) (commit *object.Commit, unborn bool, err error) {
	ref, err := repo.Head()
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err = repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, false, fmt.Errorf("resolve HEAD commit: %w", err)
	}
	return commit, false, nil
}

// currentBranchShort returns the shorthand of the checked-out branch, or ""
// for an unborn or detached HEAD.
func currentBranchShort(repo *gitlib.Repository) string {
	ref, err := repo.Head()
	if err != nil {
		return ""
	}
	if !ref.Name().IsBranch() {
		return ""
	}
	return ref.Name().Short()
}

// signature builds the committer identity from the repository configuration,
// falling back to a fixed identity so headless repositories still commit.
func signature(repo *gitlib.Repository) object.Signature {
	name, email := fallbackIdent, fallbackEmail
	if cfg, err := repo.ConfigScoped(gitcfg.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return object.Signature{Name: name, Email: email, When: time.Now()}
}
