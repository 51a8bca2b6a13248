package gitops

import (
	"errors"
	"fmt"
	"log/slog"

	gitlib "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// AddRemote registers a named remote URL mapping.
func AddRemote(repoPath, name, url string) error {
	const op = "add remote"
	repo, err := openRepo(repoPath)
	if err != nil {
		return opErr(KindBackend, op, name, err)
	}
	_, err = repo.CreateRemote(&gitcfg.RemoteConfig{Name: name, URLs: []string{url}})
	if err != nil {
		if errors.Is(err, gitlib.ErrRemoteExists) {
			return opErr(KindAlreadyExists, op, name, nil)
		}
		return opErr(KindBackend, op, name, err)
	}
	slog.Debug("remote added", slog.String("name", name), slog.String("url", url))
	return nil
}

// RemoveRemote deletes a named remote.
func RemoveRemote(repoPath, name string) error {
	const op = "remove remote"
	repo, err := openRepo(repoPath)
	if err != nil {
		return opErr(KindBackend, op, name, err)
	}
	if err := repo.DeleteRemote(name); err != nil {
		if errors.Is(err, gitlib.ErrRemoteNotFound) {
			return opErr(KindNotFound, op, name, nil)
		}
		return opErr(KindBackend, op, name, err)
	}
	slog.Debug("remote removed", slog.String("name", name))
	return nil
}

// PushBranch pushes refs/heads/branch to the same-named ref on the remote.
// An already-up-to-date remote is not a failure.
func PushBranch(repoPath, remote, branch string) error {
	const op = "push branch"
	repo, err := openRepo(repoPath)
	if err != nil {
		return opErr(KindBackend, op, branch, err)
	}
	spec := gitcfg.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	err = repo.Push(&gitlib.PushOptions{RemoteName: remote, RefSpecs: []gitcfg.RefSpec{spec}})
	switch {
	case err == nil, errors.Is(err, gitlib.NoErrAlreadyUpToDate):
		slog.Debug("pushed branch", slog.String("remote", remote), slog.String("branch", branch))
		return nil
	case errors.Is(err, gitlib.ErrRemoteNotFound):
		return opErr(KindNotFound, op, remote, nil)
	default:
		return opErr(KindBackend, op, branch, fmt.Errorf("push to %s: %w", remote, err))
	}
}

// PullBranch fetches the branch from the remote and then integrates the
// fetched tip with the same classify-then-apply routine MergeBranch uses;
// a normal merge commits as "Pull from <remote>/<branch>".
func PullBranch(repoPath, remote, branch string) error {
	const op = "pull branch"
	repo, err := openRepo(repoPath)
	if err != nil {
		return opErr(KindBackend, op, branch, err)
	}

	spec := gitcfg.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remote, branch))
	err = repo.Fetch(&gitlib.FetchOptions{RemoteName: remote, RefSpecs: []gitcfg.RefSpec{spec}})
	switch {
	case err == nil, errors.Is(err, gitlib.NoErrAlreadyUpToDate):
	case errors.Is(err, gitlib.ErrRemoteNotFound):
		return opErr(KindNotFound, op, remote, nil)
	default:
		return opErr(KindBackend, op, branch, fmt.Errorf("fetch from %s: %w", remote, err))
	}

	trackingRef := plumbing.NewRemoteReferenceName(remote, branch)
	ref, err := repo.Reference(trackingRef, true)
	if err != nil {
		return opErr(KindNotFound, op, fmt.Sprintf("%s/%s", remote, branch), nil)
	}

	message := fmt.Sprintf("Pull from %s/%s", remote, branch)
	ours := currentBranchShort(repo)
	theirs := fmt.Sprintf("%s/%s", remote, branch)
	return integrate(repo, op, ref.Hash(), message, ours, theirs)
}
