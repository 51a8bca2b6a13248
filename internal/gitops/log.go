package gitops

import (
	"fmt"
	"io"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitRecord is a read-only projection of one commit for the log list.
type CommitRecord struct {
	ID      string
	Author  string
	Date    string
	Summary string
	Parents []string
}

// CommitDetail carries the full commit for the detail pane.
type CommitDetail struct {
	ID      string
	Author  string
	Date    string
	Message string
	Parents []string
}

const dateLayout = "2006-01-02 15:04:05"

// ListCommits walks ancestry from HEAD in committer-time order and returns
// the records reversed, oldest first. An unborn HEAD yields an empty list.
func ListCommits(repoPath string) ([]CommitRecord, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, opErr(KindBackend, "read log", repoPath, err)
	}
	head, unborn, err := headCommit(repo)
	if err != nil {
		return nil, opErr(KindBackend, "read log", repoPath, err)
	}
	if unborn {
		return nil, nil
	}

	iter, err := repo.Log(&gitlib.LogOptions{From: head.Hash, Order: gitlib.LogOrderCommitterTime})
	if err != nil {
		return nil, opErr(KindBackend, "read log", repoPath, err)
	}
	defer iter.Close()

	var records []CommitRecord
	err = iter.ForEach(func(c *object.Commit) error {
		records = append(records, newRecord(c))
		return nil
	})
	if err != nil && err != io.EOF {
		return nil, opErr(KindBackend, "read log", repoPath, err)
	}
	reverse(records)
	return records, nil
}

// GetCommitDetail resolves one commit by its full hash.
func GetCommitDetail(repoPath, id string) (CommitDetail, error) {
	const op = "read commit"
	var detail CommitDetail
	repo, err := openRepo(repoPath)
	if err != nil {
		return detail, opErr(KindBackend, op, id, err)
	}
	if !plumbing.IsHash(id) {
		return detail, opErr(KindNotFound, op, id, fmt.Errorf("not a commit id"))
	}
	commit, err := repo.CommitObject(plumbing.NewHash(id))
	if err != nil {
		if err == plumbing.ErrObjectNotFound {
			return detail, opErr(KindNotFound, op, id, nil)
		}
		return detail, opErr(KindBackend, op, id, err)
	}
	return CommitDetail{
		ID:      commit.Hash.String(),
		Author:  commit.Author.Name,
		Date:    commit.Author.When.Format(dateLayout),
		Message: strings.TrimRight(commit.Message, "\n"),
		Parents: parentIDs(commit),
	}, nil
}

func newRecord(c *object.Commit) CommitRecord {
	summary := strings.SplitN(strings.TrimSpace(c.Message), "\n", 2)[0]
	return CommitRecord{
		ID:      c.Hash.String(),
		Author:  c.Author.Name,
		Date:    c.Author.When.Format(dateLayout),
		Summary: summary,
		Parents: parentIDs(c),
	}
}

func parentIDs(c *object.Commit) []string {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		parents = append(parents, h.String())
	}
	return parents
}

func reverse(records []CommitRecord) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}
