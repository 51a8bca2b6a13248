package gitops

import (
	"fmt"
	"log/slog"
	"sort"

	gitlib "github.com/go-git/go-git/v5"
)

// StatusLines projects the working-tree status into display lines of the
// form "<code> <path>": "??" for untracked files, otherwise the index code
// when the path is staged or the worktree code when it is not. Paths are
// sorted so repeated calls over an unchanged tree produce identical output.
func StatusLines(repoPath string) ([]string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, opErr(KindBackend, "read status", repoPath, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, opErr(KindBackend, "read status", repoPath, err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, opErr(KindBackend, "read status", repoPath, err)
	}

	paths := make([]string, 0, len(status))
	for path := range status {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var lines []string
	for _, path := range paths {
		fs := status[path]
		code := statusCode(fs)
		if code == "" {
			continue
		}
		lines = append(lines, code+" "+path)
	}
	return lines, nil
}

func statusCode(fs *gitlib.FileStatus) string {
	if fs.Worktree == gitlib.Untracked {
		return "??"
	}
	switch fs.Staging {
	case gitlib.Added:
		return "A"
	case gitlib.Modified:
		return "M"
	case gitlib.Deleted:
		return "D"
	case gitlib.Renamed:
		return "R"
	}
	switch fs.Worktree {
	case gitlib.Modified:
		return "M"
	case gitlib.Deleted:
		return "D"
	}
	return ""
}

// AddFiles stages every listed path into the index. A failing path aborts
// the walk and is named in the returned error.
func AddFiles(repoPath string, files []string) error {
	repo, err := openRepo(repoPath)
	if err != nil {
		return opErr(KindBackend, "stage files", repoPath, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return opErr(KindBackend, "stage files", repoPath, err)
	}
	for _, file := range files {
		if _, err := wt.Add(file); err != nil {
			return opErr(KindBackend, "stage file", file, err)
		}
		slog.Debug("staged file", slog.String("path", file))
	}
	return nil
}

// hasStagedChanges reports whether the index differs from HEAD.
func hasStagedChanges(wt *gitlib.Worktree) (bool, error) {
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("read status: %w", err)
	}
	for _, fs := range status {
		if fs.Staging != gitlib.Unmodified && fs.Staging != gitlib.Untracked {
			return true, nil
		}
	}
	return false, nil
}
