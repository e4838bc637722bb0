// Package linediff computes line-oriented changesets between an expected and an actual string, and renders them for humans.
//
// Representation: a Changeset holds the complete Expected/Actual texts and an ordered slice of hunks that, when concatenated, reconstruct both sides. Each hunk has
// an Op:
//   - OpEqual: unchanged region (Expected == Actual)
//   - OpInsert: text present only in the actual side (Expected == "")
//   - OpDelete: text present only in the expected side (Actual == "")
//   - OpReplace: text changed on both sides
//
// For non-equal hunks, Lines holds per-line changes; for non-equal lines, Segments holds intra-line pieces. Lines include their trailing '\n' when the input had
// one; Segments never contain '\n'.
//
// Invariants:
//   - concat(hunks.Expected) == Changeset.Expected, and likewise for Actual.
//   - If hunk.Op == OpEqual, hunk.Lines is nil; otherwise the line texts concatenate to the hunk texts.
//   - If line.Op == OpEqual, line.Segments is nil; otherwise the segment texts concatenate to the line texts, allowing for an optional trailing '\n'.
//
// The exact grouping of changes into hunks and segments is a policy choice of Compute and may evolve; rely on the invariants, not on a particular chunking.
//
// Distance reports how many lines differ (zero means the two texts are byte-identical), which is what snapshot comparison keys off. Render produces a
// unified-style listing ("-"/"+"/" " markers, no @@ headers) with optional ANSI color and terminal-width clipping.
package linediff
