package gitops

import (
	"github.com/pmezard/go-difflib/difflib"
)

// mergeLines performs a three-way merge of line slices. Changes relative to
// base that touch disjoint regions are combined; overlapping divergent
// changes produce conflict markers labeled with oursLabel/theirsLabel and a
// true conflicted flag.
func mergeLines(base, ours, theirs []string, oursLabel, theirsLabel string) (merged []string, conflicted bool) {
	spansO := sideSpans(base, ours)
	spansT := sideSpans(base, theirs)
	groups := groupSpans(spansO, spansT, len(base))

	pos := 0
	for _, g := range groups {
		for ; pos < g.lo; pos++ {
			merged = append(merged, base[pos])
		}
		oursSeg := applySpans(base, g.lo, g.hi, g.ours)
		theirsSeg := applySpans(base, g.lo, g.hi, g.theirs)
		switch {
		case len(g.ours) == 0:
			merged = append(merged, theirsSeg...)
		case len(g.theirs) == 0:
			merged = append(merged, oursSeg...)
		case equalLines(oursSeg, theirsSeg):
			merged = append(merged, oursSeg...)
		default:
			conflicted = true
			merged = append(merged, "<<<<<<< "+oursLabel)
			merged = append(merged, oursSeg...)
			merged = append(merged, "=======")
			merged = append(merged, theirsSeg...)
			merged = append(merged, ">>>>>>> "+theirsLabel)
		}
		pos = g.hi
	}
	for ; pos < len(base); pos++ {
		merged = append(merged, base[pos])
	}
	return merged, conflicted
}

// span is one edit relative to base: base lines [lo,hi) are replaced by
// lines. Insertions are zero-width (lo == hi).
type span struct {
	lo, hi int
	lines  []string
}

// sideSpans extracts the edits one side made to base, in base coordinates.
func sideSpans(base, side []string) []span {
	matcher := difflib.NewMatcher(base, side)
	var spans []span
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r', 'd', 'i':
			spans = append(spans, span{lo: op.I1, hi: op.I2, lines: side[op.J1:op.J2]})
		}
	}
	return spans
}

// group is a maximal run of edits from either side over one base region.
type group struct {
	lo, hi int
	ours   []span
	theirs []span
}

// groupSpans partitions the two sides' edits into regions. Edits land in the
// same group when their base regions overlap; a zero-width insert collides
// with any edit covering or starting at its position.
func groupSpans(ours, theirs []span, baseLen int) []group {
	var groups []group
	i, j := 0, 0
	for i < len(ours) || j < len(theirs) {
		var g group
		switch {
		case j >= len(theirs):
			g = group{lo: ours[i].lo, hi: ours[i].hi}
		case i >= len(ours):
			g = group{lo: theirs[j].lo, hi: theirs[j].hi}
		case ours[i].lo <= theirs[j].lo:
			g = group{lo: ours[i].lo, hi: ours[i].hi}
		default:
			g = group{lo: theirs[j].lo, hi: theirs[j].hi}
		}
		// Absorb every span overlapping the growing region.
		for {
			grew := false
			for i < len(ours) && touches(ours[i], g.lo, g.hi) {
				g.ours = append(g.ours, ours[i])
				g.lo, g.hi = minInt(g.lo, ours[i].lo), maxInt(g.hi, ours[i].hi)
				i++
				grew = true
			}
			for j < len(theirs) && touches(theirs[j], g.lo, g.hi) {
				g.theirs = append(g.theirs, theirs[j])
				g.lo, g.hi = minInt(g.lo, theirs[j].lo), maxInt(g.hi, theirs[j].hi)
				j++
				grew = true
			}
			if !grew {
				break
			}
		}
		if g.hi > baseLen {
			g.hi = baseLen
		}
		groups = append(groups, g)
	}
	return groups
}

func touches(s span, lo, hi int) bool {
	if s.lo == s.hi {
		if lo == hi {
			return s.lo == lo
		}
		return s.lo >= lo && s.lo < hi
	}
	if lo == hi {
		return lo >= s.lo && lo < s.hi
	}
	return s.lo < hi && lo < s.hi
}

// applySpans rewrites base[lo:hi] with one side's edits. Spans from a single
// difflib pass never overlap each other.
func applySpans(base []string, lo, hi int, spans []span) []string {
	var out []string
	pos := lo
	for _, s := range spans {
		for ; pos < s.lo && pos < hi; pos++ {
			out = append(out, base[pos])
		}
		out = append(out, s.lines...)
		if s.hi > pos {
			pos = s.hi
		}
	}
	for ; pos < hi; pos++ {
		out = append(out, base[pos])
	}
	return out
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
