package gitops

import (
	"fmt"
	"log/slog"

	gitlib "github.com/go-git/go-git/v5"
)

// CommitChanges writes the staged index as a commit on HEAD. When the
// repository has no commits yet the result is a root commit with zero
// parents; otherwise the commit has exactly one parent, the current HEAD.
// An empty index fails before anything is written, whatever the message.
func CommitChanges(repoPath, message string) error {
	const op = "commit"
	repo, err := openRepo(repoPath)
	if err != nil {
		return opErr(KindBackend, op, repoPath, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return opErr(KindBackend, op, repoPath, err)
	}

	staged, err := hasStagedChanges(wt)
	if err != nil {
		return opErr(KindBackend, op, repoPath, err)
	}
	if !staged {
		return opErr(KindInvalidOperation, op, "", fmt.Errorf("no changes staged"))
	}

	sig := signature(repo)
	hash, err := wt.Commit(message, &gitlib.CommitOptions{Author: &sig, Committer: &sig})
	if err != nil {
		return opErr(KindBackend, op, "", err)
	}
	slog.Debug("commit created", slog.String("hash", hash.String()))
	return nil
}
