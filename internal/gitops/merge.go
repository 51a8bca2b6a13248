package gitops

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Outcome classifies an integration of a target commit into HEAD.
type Outcome int

const (
	// OutcomeUnknown means the histories share no common ancestor; the
	// operation is treated as non-retriable.
	OutcomeUnknown Outcome = iota
	// OutcomeUpToDate means HEAD already contains the target.
	OutcomeUpToDate
	// OutcomeFastForward means the target contains HEAD; the current branch
	// ref can move without a new commit.
	OutcomeFastForward
	// OutcomeNormal means a true three-way merge is required.
	OutcomeNormal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpToDate:
		return "up to date"
	case OutcomeFastForward:
		return "fast-forward"
	case OutcomeNormal:
		return "normal merge"
	default:
		return "unknown"
	}
}

// Classify runs merge analysis of the named branch against HEAD without
// applying anything. Calling it repeatedly over an unchanged repository
// yields the same outcome.
func Classify(repoPath, name string) (Outcome, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return OutcomeUnknown, opErr(KindBackend, "merge analysis", name, err)
	}
	target, err := resolveBranchTip(repo, name)
	if err != nil {
		return OutcomeUnknown, opErr(KindNotFound, "merge analysis", name, nil)
	}
	head, unborn, err := headCommit(repo)
	if err != nil || unborn {
		return OutcomeUnknown, opErr(KindBackend, "merge analysis", name, err)
	}
	outcome, _, err := classifyCommits(repo, head, target)
	if err != nil {
		return OutcomeUnknown, opErr(KindBackend, "merge analysis", name, err)
	}
	return outcome, nil
}

// MergeBranch integrates the named local branch into the current branch:
// up-to-date fails, fast-forward moves the current branch ref, a normal
// merge produces a two-parent commit or fails with the conflicting paths.
func MergeBranch(repoPath, name string) error {
	const op = "merge branch"
	repo, err := openRepo(repoPath)
	if err != nil {
		return opErr(KindBackend, op, name, err)
	}

	current := currentBranchShort(repo)
	if name == current {
		return opErr(KindInvalidOperation, op, name, fmt.Errorf("cannot merge a branch into itself"))
	}

	target, err := resolveBranchTip(repo, name)
	if err != nil {
		return opErr(KindNotFound, op, name, nil)
	}
	message := fmt.Sprintf("Merge branch '%s'", name)
	return integrate(repo, op, target, message, current, name)
}

func resolveBranchTip(repo *gitlib.Repository, name string) (plumbing.Hash, error) {
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return ref.Hash(), nil
}

// integrate is the single classify-then-apply routine shared by merge and
// pull; the two entry points differ only in how the target was resolved and
// in the commit message.
func integrate(repo *gitlib.Repository, op string, target plumbing.Hash, message, oursLabel, theirsLabel string) error {
	head, unborn, err := headCommit(repo)
	if err != nil {
		return opErr(KindBackend, op, theirsLabel, err)
	}
	if unborn {
		return opErr(KindBackend, op, theirsLabel, fmt.Errorf("repository has no commits"))
	}

	outcome, base, err := classifyCommits(repo, head, target)
	if err != nil {
		return opErr(KindBackend, op, theirsLabel, err)
	}
	slog.Debug("merge analysis",
		slog.String("target", target.String()),
		slog.String("outcome", outcome.String()),
	)

	switch outcome {
	case OutcomeUpToDate:
		return opErr(KindInvalidOperation, op, theirsLabel, fmt.Errorf("already up to date"))
	case OutcomeFastForward:
		return fastForward(repo, op, target, theirsLabel)
	case OutcomeNormal:
		return normalMerge(repo, op, base, head, target, message, oursLabel, theirsLabel)
	default:
		return opErr(KindUnknown, op, theirsLabel, fmt.Errorf("histories are unrelated"))
	}
}

// classifyCommits decides the integration shape from the merge base of HEAD
// and the target.
func classifyCommits(repo *gitlib.Repository, head *object.Commit, target plumbing.Hash) (Outcome, *object.Commit, error) {
	if head.Hash == target {
		return OutcomeUpToDate, nil, nil
	}
	targetCommit, err := repo.CommitObject(target)
	if err != nil {
		return OutcomeUnknown, nil, fmt.Errorf("resolve target commit: %w", err)
	}
	bases, err := head.MergeBase(targetCommit)
	if err != nil {
		return OutcomeUnknown, nil, fmt.Errorf("merge base: %w", err)
	}
	if len(bases) == 0 {
		return OutcomeUnknown, nil, nil
	}
	base := bases[0]
	switch base.Hash {
	case target:
		return OutcomeUpToDate, nil, nil
	case head.Hash:
		return OutcomeFastForward, nil, nil
	}
	return OutcomeNormal, base, nil
}

// fastForward moves the current branch ref to the target tip and force
// checks out; no commit is created.
func fastForward(repo *gitlib.Repository, op string, target plumbing.Hash, subject string) error {
	headRef, err := repo.Head()
	if err != nil {
		return opErr(KindBackend, op, subject, fmt.Errorf("resolve HEAD: %w", err))
	}
	if err := repo.Storer.SetReference(plumbing.NewHashReference(headRef.Name(), target)); err != nil {
		return opErr(KindBackend, op, subject, fmt.Errorf("move ref: %w", err))
	}
	wt, err := repo.Worktree()
	if err != nil {
		return opErr(KindBackend, op, subject, err)
	}
	if err := wt.Checkout(&gitlib.CheckoutOptions{Branch: headRef.Name(), Force: true}); err != nil {
		return opErr(KindBackend, op, subject, fmt.Errorf("checkout: %w", err))
	}
	slog.Debug("fast-forwarded", slog.String("branch", headRef.Name().Short()), slog.String("tip", target.String()))
	return nil
}

func normalMerge(repo *gitlib.Repository, op string, base, head *object.Commit, target plumbing.Hash, message, oursLabel, theirsLabel string) error {
	targetCommit, err := repo.CommitObject(target)
	if err != nil {
		return opErr(KindBackend, op, theirsLabel, err)
	}
	conflicts, err := mergeTrees(repo, base, head, targetCommit, oursLabel, theirsLabel)
	if err != nil {
		return opErr(KindBackend, op, theirsLabel, err)
	}
	if len(conflicts) > 0 {
		return &OpError{Kind: KindConflict, Op: op, Subject: theirsLabel, Paths: conflicts}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return opErr(KindBackend, op, theirsLabel, err)
	}
	sig := signature(repo)
	// The merged tree can equal HEAD's tree when both sides made the same
	// change; the two-parent commit must still be created.
	hash, err := wt.Commit(message, &gitlib.CommitOptions{
		Author:            &sig,
		Committer:         &sig,
		Parents:           []plumbing.Hash{head.Hash, target},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return opErr(KindBackend, op, theirsLabel, fmt.Errorf("create merge commit: %w", err))
	}
	slog.Debug("merge commit created", slog.String("hash", hash.String()))
	return nil
}

// mergeTrees walks the union of paths across the base, ours, and theirs
// trees, applies one-sided changes directly, and runs a line-level
// three-way merge where both sides touched the same file. Conflicting
// paths get marker files in the working tree and are returned unstaged.
func mergeTrees(repo *gitlib.Repository, base, ours, theirs *object.Commit, oursLabel, theirsLabel string) ([]string, error) {
	baseFiles, err := treeFiles(base)
	if err != nil {
		return nil, err
	}
	ourFiles, err := treeFiles(ours)
	if err != nil {
		return nil, err
	}
	theirFiles, err := treeFiles(theirs)
	if err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	root := wt.Filesystem.Root()

	var conflicts []string
	for _, path := range unionPaths(baseFiles, ourFiles, theirFiles) {
		b, o, t := baseFiles[path], ourFiles[path], theirFiles[path]
		switch {
		case sameHash(o, t):
			// Same on both sides, including both deleted or both added
			// identically; the index already matches.
		case sameHash(b, t):
			// Only ours changed; keep it.
		case sameHash(b, o):
			// Only theirs changed; adopt it.
			if t == nil {
				if _, err := wt.Remove(path); err != nil {
					return nil, fmt.Errorf("remove %s: %w", path, err)
				}
				continue
			}
			content, err := blobContent(repo, *t)
			if err != nil {
				return nil, err
			}
			if err := writeAndStage(wt, root, path, content); err != nil {
				return nil, err
			}
		case o == nil || t == nil:
			// Deleted on one side, modified on the other.
			conflicts = append(conflicts, path)
		default:
			baseContent := ""
			if b != nil {
				if baseContent, err = blobContent(repo, *b); err != nil {
					return nil, err
				}
			}
			ourContent, err := blobContent(repo, *o)
			if err != nil {
				return nil, err
			}
			theirContent, err := blobContent(repo, *t)
			if err != nil {
				return nil, err
			}
			merged, conflicted := mergeLines(
				splitLines(baseContent), splitLines(ourContent), splitLines(theirContent),
				oursLabel, theirsLabel,
			)
			content := joinLines(merged)
			if conflicted {
				conflicts = append(conflicts, path)
				if err := writeFile(root, path, content); err != nil {
					return nil, err
				}
				continue
			}
			if err := writeAndStage(wt, root, path, content); err != nil {
				return nil, err
			}
		}
	}
	sort.Strings(conflicts)
	return conflicts, nil
}

// treeFiles maps every path in the commit's tree to its blob hash.
func treeFiles(c *object.Commit) (map[string]*plumbing.Hash, error) {
	files := map[string]*plumbing.Hash{}
	if c == nil {
		return files, nil
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("resolve tree of %s: %w", c.Hash, err)
	}
	err = tree.Files().ForEach(func(f *object.File) error {
		hash := f.Hash
		files[f.Name] = &hash
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk tree of %s: %w", c.Hash, err)
	}
	return files, nil
}

func unionPaths(sets ...map[string]*plumbing.Hash) []string {
	seen := map[string]struct{}{}
	var paths []string
	for _, set := range sets {
		for path := range set {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func sameHash(a, b *plumbing.Hash) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func blobContent(repo *gitlib.Repository, hash plumbing.Hash) (string, error) {
	blob, err := repo.BlobObject(hash)
	if err != nil {
		return "", fmt.Errorf("resolve blob %s: %w", hash, err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return "", fmt.Errorf("read blob %s: %w", hash, err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read blob %s: %w", hash, err)
	}
	return string(data), nil
}

func writeAndStage(wt *gitlib.Worktree, root, path, content string) error {
	if err := writeFile(root, path, content); err != nil {
		return err
	}
	if _, err := wt.Add(path); err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	return nil
}

func writeFile(root, path, content string) error {
	full := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
