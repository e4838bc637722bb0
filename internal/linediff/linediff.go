package linediff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op classifies how a region changed between the expected and actual text.
type Op int

// Operations from expected text to actual text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

// eol is the line separator. Content is treated as '\n'-separated; '\r' bytes are ordinary characters and are never normalized away.
const eol = "\n"

// Changeset is a line-oriented diff from an expected text to an actual text.
//
// Invariants:
//   - concat(Hunks.Expected) == Expected
//   - concat(Hunks.Actual) == Actual
type Changeset struct {
	Expected string // Entire expected (baseline) text.
	Actual   string // Entire actual (freshly produced) text.
	Hunks    []Hunk // Ordered hunks covering the whole diff; they reconstruct Expected/Actual.
}

// Hunk is a contiguous group of lines. The '\n' is part of each line, so a hunk covering removed lines from the middle of a text ends with '\n'.
//
// Invariants:
//   - If Op == OpEqual, Lines is nil. Otherwise,
//   - concat(Lines.Expected) == Expected and concat(Lines.Actual) == Actual.
type Hunk struct {
	Op       Op
	Expected string // Concatenation of expected-side lines; empty for inserts.
	Actual   string // Concatenation of actual-side lines; empty for deletes.
	Lines    []Line // Per-line changes when Op != OpEqual; nil when OpEqual.
}

// Line is a single-line change. Lines keep their trailing '\n' when the input had one.
//
// Invariants:
//   - If Op == OpEqual, Segments is nil. Otherwise,
//   - concat(Segments.Expected) plus an optional trailing '\n' equals Expected, and likewise for Actual.
type Line struct {
	Op       Op
	Expected string
	Actual   string
	Segments []Segment // Intra-line pieces when Op != OpEqual; nil when OpEqual. Segments never contain '\n'.
}

// Segment is a piece of a single line. It never contains '\n'.
type Segment struct {
	Op       Op
	Expected string
	Actual   string
}

// Compute diffs expected against actual at line granularity and returns the resulting Changeset.
//
// Lines are the diff unit; within a changed line, character-level segments pinpoint what moved. Compute panics if the result violates the package invariants,
// since that indicates a bug here rather than bad input.
func Compute(expected, actual string) Changeset {
	dmp := diffmatchpatch.New()

	// Line-granularity pass: encode each distinct line as a rune, diff the rune strings, then map back.
	encExp, encAct, lineIndex := dmp.DiffLinesToRunes(expected, actual)
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(encExp, encAct, false))

	decode := func(encoded string) []string {
		var out []string
		for _, r := range encoded {
			if i := int(r); i >= 0 && i < len(lineIndex) {
				out = append(out, lineIndex[i])
			}
		}
		return out
	}

	var hunks []Hunk
	var removed, added []string

	flush := func() {
		if len(removed) == 0 && len(added) == 0 {
			return
		}
		hunks = append(hunks, Hunk{
			Op:       opFor(len(removed) > 0, len(added) > 0),
			Expected: strings.Join(removed, ""),
			Actual:   strings.Join(added, ""),
			Lines:    pairLines(dmp, removed, added),
		})
		removed, added = nil, nil
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			eq := decode(d.Text)
			if len(eq) == 0 {
				continue
			}
			text := strings.Join(eq, "")
			hunks = append(hunks, Hunk{Op: OpEqual, Expected: text, Actual: text})
		case diffmatchpatch.DiffDelete:
			removed = append(removed, decode(d.Text)...)
		case diffmatchpatch.DiffInsert:
			added = append(added, decode(d.Text)...)
		}
	}
	flush()

	cs := Changeset{Expected: expected, Actual: actual, Hunks: hunks}
	if err := cs.validate(); err != nil {
		panic(fmt.Errorf("linediff: Compute: %v", err))
	}
	return cs
}

// Distance returns the number of differing lines: lines removed from the expected side plus lines added on the actual side. A replaced line counts on both
// sides. Zero if and only if the two texts are byte-identical.
func (c Changeset) Distance() int {
	n := 0
	for _, h := range c.Hunks {
		if h.Op == OpEqual {
			continue
		}
		n += countLines(h.Expected) + countLines(h.Actual)
	}
	return n
}

// pairLines turns the removed/added line groups of one change hunk into per-line diffs. Positionally matched lines become replacements with character-level
// segments; leftovers are pure deletes or inserts.
func pairLines(dmp *diffmatchpatch.DiffMatchPatch, removed, added []string) []Line {
	n := min(len(removed), len(added))
	var out []Line
	for i := 0; i < n; i++ {
		exp, act := removed[i], added[i]
		if exp == act {
			out = append(out, Line{Op: OpEqual, Expected: exp, Actual: act})
			continue
		}
		expCore := strings.TrimSuffix(exp, eol)
		actCore := strings.TrimSuffix(act, eol)
		segs := segments(dmp.DiffCleanupSemantic(dmp.DiffMain(expCore, actCore, false)))
		out = append(out, Line{Op: OpReplace, Expected: exp, Actual: act, Segments: segs})
	}
	for _, exp := range removed[n:] {
		var segs []Segment
		if core := strings.TrimSuffix(exp, eol); core != "" {
			segs = []Segment{{Op: OpDelete, Expected: core}}
		}
		out = append(out, Line{Op: OpDelete, Expected: exp, Segments: segs})
	}
	for _, act := range added[n:] {
		var segs []Segment
		if core := strings.TrimSuffix(act, eol); core != "" {
			segs = []Segment{{Op: OpInsert, Actual: core}}
		}
		out = append(out, Line{Op: OpInsert, Actual: act, Segments: segs})
	}
	return out
}

// segments converts character-level diffmatchpatch diffs into Segments, coalescing adjacent equals and collapsing adjacent delete/insert runs into a single
// replacement.
func segments(diffs []diffmatchpatch.Diff) []Segment {
	var out []Segment
	add := func(s Segment) {
		if n := len(out); n > 0 {
			last := &out[n-1]
			switch {
			case last.Op == OpEqual && s.Op == OpEqual:
				last.Expected += s.Expected
				last.Actual += s.Actual
				return
			case last.Op != OpEqual && s.Op != OpEqual:
				last.Expected += s.Expected
				last.Actual += s.Actual
				last.Op = opFor(last.Expected != "", last.Actual != "")
				return
			}
		}
		out = append(out, s)
	}
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			add(Segment{Op: OpEqual, Expected: d.Text, Actual: d.Text})
		case diffmatchpatch.DiffDelete:
			add(Segment{Op: OpDelete, Expected: d.Text})
		case diffmatchpatch.DiffInsert:
			add(Segment{Op: OpInsert, Actual: d.Text})
		}
	}
	return out
}

func opFor(hasExpected, hasActual bool) Op {
	switch {
	case hasExpected && hasActual:
		return OpReplace
	case hasExpected:
		return OpDelete
	default:
		return OpInsert
	}
}

// countLines counts '\n'-separated lines in text; a final line without '\n' still counts.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, eol)
	if !strings.HasSuffix(text, eol) {
		n++
	}
	return n
}

// splitLines splits text into lines, each keeping its trailing '\n' (except possibly the last).
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, eol)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
