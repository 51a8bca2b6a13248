package gitops

import (
	"strings"
	"testing"
)

func TestListCommitsOldestFirst(t *testing.T) {
	dir, clock := initFixture(t)
	first := commitFixture(t, dir, clock, "first", map[string]string{"a.txt": "one\n"})
	second := commitFixture(t, dir, clock, "second", map[string]string{"a.txt": "two\n"})
	third := commitFixture(t, dir, clock, "third", map[string]string{"a.txt": "three\n"})

	records, err := ListCommits(dir)
	if err != nil {
		t.Fatalf("list commits: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(records))
	}
	for i, want := range []string{first, second, third} {
		if records[i].ID != want {
			t.Errorf("records[%d].ID = %s, want %s", i, records[i].ID, want)
		}
	}
	if records[0].Summary != "first" || records[2].Summary != "third" {
		t.Errorf("unexpected summaries: %v", records)
	}
}

func TestListCommitsEmptyRepository(t *testing.T) {
	dir, _ := initFixture(t)

	records, err := ListCommits(dir)
	if err != nil {
		t.Fatalf("list commits: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no commits on an unborn HEAD, got %v", records)
	}
}

func TestListCommitsSummaryIsFirstLine(t *testing.T) {
	dir, clock := initFixture(t)
	commitFixture(t, dir, clock, "subject line\n\nbody paragraph\n", map[string]string{"a.txt": "one\n"})

	records, err := ListCommits(dir)
	if err != nil {
		t.Fatalf("list commits: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(records))
	}
	if records[0].Summary != "subject line" {
		t.Errorf("summary = %q, want %q", records[0].Summary, "subject line")
	}
}

func TestGetCommitDetail(t *testing.T) {
	dir, clock := initFixture(t)
	first := commitFixture(t, dir, clock, "first", map[string]string{"a.txt": "one\n"})
	second := commitFixture(t, dir, clock, "second\n\nwith body\n", map[string]string{"a.txt": "two\n"})

	detail, err := GetCommitDetail(dir, second)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if detail.ID != second {
		t.Errorf("detail.ID = %s, want %s", detail.ID, second)
	}
	if detail.Author != "fixture" {
		t.Errorf("detail.Author = %q, want %q", detail.Author, "fixture")
	}
	if !strings.Contains(detail.Message, "with body") {
		t.Errorf("detail.Message = %q, want full message", detail.Message)
	}
	if len(detail.Parents) != 1 || detail.Parents[0] != first {
		t.Errorf("detail.Parents = %v, want [%s]", detail.Parents, first)
	}
}

func TestGetCommitDetailBadID(t *testing.T) {
	dir, clock := initFixture(t)
	commitFixture(t, dir, clock, "initial", map[string]string{"a.txt": "one\n"})

	for _, id := range []string{"not-a-hash", "0123456789012345678901234567890123456789"} {
		_, err := GetCommitDetail(dir, id)
		if err == nil {
			t.Fatalf("expected lookup of %q to fail", id)
		}
		if KindOf(err) != KindNotFound {
			t.Errorf("expected not-found error for %q, got %v", id, err)
		}
	}
}
