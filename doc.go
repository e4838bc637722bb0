// Package snapcheck compares a runtime-produced string against a snapshot file holding the last-accepted expected value.
//
// A check resolves to exactly one outcome:
//   - The snapshot file does not exist: the actual string is written as the new baseline and the check fails with ErrCreated, so the caller reviews the baseline
//     instead of silently accepting it.
//   - The file exists and update mode is on: an identical actual succeeds; a differing actual overwrites the file and fails with ErrUpdated (same review-forcing
//     rationale).
//   - The file exists, normal mode: an identical actual succeeds; a differing actual fails with ErrDifference without touching the file.
//
// Failures to open, read, or write the snapshot file surface as *IOError identifying the stage; nothing is retried.
//
// Check and CheckNoDiff are the package-level entry points; they differ only in whether a diff is rendered on mismatch, and both take update mode from the
// presence of the UPDATE_SNAPSHOTS environment variable (any value, including empty). For explicit control — update mode as a flag, a different diff
// destination, forced color — construct a Checker directly.
//
// Snapshot files hold the raw bytes of the actual string: no header, no metadata, no newline normalization. Concurrent checks against the same path are not
// coordinated; the last writer wins.
package snapcheck
