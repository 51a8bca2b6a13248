package gitops

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// BranchRef is a read-only projection of one local branch.
type BranchRef struct {
	Name    string
	Current bool
}

// LocalBranches lists local branches sorted by name, marking the one HEAD
// points at.
func LocalBranches(repoPath string) ([]BranchRef, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, opErr(KindBackend, "list branches", repoPath, err)
	}
	head := currentBranchShort(repo)

	iter, err := repo.Branches()
	if err != nil {
		return nil, opErr(KindBackend, "list branches", repoPath, err)
	}
	defer iter.Close()

	var branches []BranchRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if strings.TrimSpace(name) == "" {
			return nil
		}
		branches = append(branches, BranchRef{Name: name, Current: name == head})
		return nil
	})
	if err != nil {
		return nil, opErr(KindBackend, "list branches", repoPath, err)
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

// CreateBranch creates a branch pointing at the commit HEAD resolves to.
// It does not switch to the new branch.
func CreateBranch(repoPath, name string) error {
	const op = "create branch"
	repo, err := openRepo(repoPath)
	if err != nil {
		return opErr(KindBackend, op, name, err)
	}

	refName := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(refName, false); err == nil {
		return opErr(KindAlreadyExists, op, name, nil)
	}

	head, unborn, err := headCommit(repo)
	if err != nil {
		return opErr(KindBackend, op, name, err)
	}
	if unborn {
		return opErr(KindBackend, op, name, fmt.Errorf("repository has no commits"))
	}

	if err := repo.Storer.SetReference(plumbing.NewHashReference(refName, head.Hash)); err != nil {
		return opErr(KindBackend, op, name, err)
	}
	slog.Debug("branch created", slog.String("name", name), slog.String("tip", head.Hash.String()))
	return nil
}

// DeleteBranch removes a branch ref. The checked-out branch can never be
// deleted, even in a single-branch repository.
func DeleteBranch(repoPath, name string) error {
	const op = "delete branch"
	repo, err := openRepo(repoPath)
	if err != nil {
		return opErr(KindBackend, op, name, err)
	}

	if name == currentBranchShort(repo) {
		return opErr(KindInvalidOperation, op, name, fmt.Errorf("branch is checked out"))
	}

	refName := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(refName, false); err != nil {
		return opErr(KindNotFound, op, name, nil)
	}
	if err := repo.Storer.RemoveReference(refName); err != nil {
		return opErr(KindBackend, op, name, err)
	}
	slog.Debug("branch deleted", slog.String("name", name))
	return nil
}

// SwitchBranch points HEAD at the named branch and force-checks-out the
// working tree. Local modifications that collide with the target are
// overwritten; there is no stash or abort path.
func SwitchBranch(repoPath, name string) error {
	const op = "switch branch"
	repo, err := openRepo(repoPath)
	if err != nil {
		return opErr(KindBackend, op, name, err)
	}

	refName := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(refName, true); err != nil {
		return opErr(KindNotFound, op, name, nil)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return opErr(KindBackend, op, name, err)
	}
	if err := wt.Checkout(&gitlib.CheckoutOptions{Branch: refName, Force: true}); err != nil {
		return opErr(KindBackend, op, name, fmt.Errorf("checkout: %w", err))
	}
	slog.Debug("switched branch", slog.String("name", name))
	return nil
}
