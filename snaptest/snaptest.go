// Package snaptest hooks snapshot checking into Go tests. Match compares a produced string against a snapshot stored under testdata/snapshots in the package
// being tested, failing the test with a diff on mismatch and forcing review of newly created or updated baselines.
package snaptest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codalotl/snapcheck"
)

// snapshotDir is where Match stores snapshots, relative to the package under test (the working directory of its tests).
const snapshotDir = "testdata/snapshots"

// Match compares got against the snapshot named name under testdata/snapshots.
//
// A missing snapshot is created from got and the test fails so the new baseline gets reviewed and committed. A mismatch fails the test with a diff; set
// UPDATE_SNAPSHOTS (any value) to overwrite the stored snapshot instead, which still fails once so the change gets reviewed. I/O failures fail the test outright.
func Match(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join(filepath.FromSlash(snapshotDir), name)
	update := false
	if _, ok := os.LookupEnv(snapcheck.UpdateEnvVar); ok {
		update = true
	}

	diff, err := match(path, got, update)
	switch {
	case err == nil:
	case errors.Is(err, snapcheck.ErrCreated):
		t.Fatalf("snaptest: created new snapshot %s; review it before committing:\n%s", path, diff)
	case errors.Is(err, snapcheck.ErrUpdated):
		t.Fatalf("snaptest: updated snapshot %s; review the change before committing:\n%s", path, diff)
	case errors.Is(err, snapcheck.ErrDifference):
		t.Fatalf("snaptest: %s does not match (set %s to update):\n%s", path, snapcheck.UpdateEnvVar, diff)
	default:
		t.Fatalf("snaptest: check %s: %v", path, err)
	}
}

// match runs the check for the snapshot at path and returns the rendered diff alongside the outcome.
func match(path string, got string, update bool) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("snaptest: create snapshot dir: %w", err)
		}
	}

	var diff bytes.Buffer
	checker := snapcheck.Checker{
		Update:   update,
		ShowDiff: true,
		Output:   &diff,
		Color:    snapcheck.ColorNever,
	}
	err := checker.Check(got, path)
	return diff.String(), err
}

// Dedent prepares an indented inline fixture: it drops leading and trailing blank lines, removes the smallest indent shared by the non-blank lines (spaces and
// tabs both count), strips trailing spaces and tabs from every line, and terminates the result with a single '\n'. Whitespace-only lines become empty lines.
func Dedent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")

	common := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if indent := len(line) - len(trimmed); common == -1 || indent < common {
			common = indent
		}
	}

	var b strings.Builder
	for _, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			b.WriteByte('\n')
			continue
		}
		if common > 0 {
			line = line[common:]
		}
		b.WriteString(strings.TrimRight(line, " \t"))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
