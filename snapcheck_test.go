package snapcheck_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/codalotl/snapcheck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ensureNormalMode unsets UPDATE_SNAPSHOTS for the duration of the test so the package-level entry points run in normal mode.
func ensureNormalMode(t *testing.T) {
	t.Helper()
	if v, ok := os.LookupEnv(snapcheck.UpdateEnvVar); ok {
		require.NoError(t, os.Unsetenv(snapcheck.UpdateEnvVar))
		t.Cleanup(func() { os.Setenv(snapcheck.UpdateEnvVar, v) })
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCheck_Lifecycle(t *testing.T) {
	ensureNormalMode(t)
	path := filepath.Join(t.TempDir(), "greeting.snap")

	// First check against a missing file establishes the baseline and force-fails.
	err := snapcheck.CheckNoDiff("hello world", path)
	require.ErrorIs(t, err, snapcheck.ErrCreated)
	require.Equal(t, "hello world", readFile(t, path))

	// Same actual, normal mode: success.
	require.NoError(t, snapcheck.CheckNoDiff("hello world", path))

	// Differing actual, normal mode: mismatch, file untouched.
	err = snapcheck.CheckNoDiff("hello world!", path)
	require.ErrorIs(t, err, snapcheck.ErrDifference)
	require.Equal(t, "hello world", readFile(t, path))

	// Differing actual, update mode: overwrite and force-fail.
	err = snapcheck.Checker{Update: true}.Check("hello world!", path)
	require.ErrorIs(t, err, snapcheck.ErrUpdated)
	require.Equal(t, "hello world!", readFile(t, path))

	// Same actual again, normal mode: success.
	require.NoError(t, snapcheck.CheckNoDiff("hello world!", path))
}

func TestCheck_Reflexivity(t *testing.T) {
	ensureNormalMode(t)
	for _, s := range []string{"", "one line", "multi\nline\ntext\n", "trailing newline\n"} {
		path := filepath.Join(t.TempDir(), "r.snap")
		require.NoError(t, os.WriteFile(path, []byte(s), 0o644))
		assert.NoError(t, snapcheck.CheckNoDiff(s, path), "input %q", s)
	}
}

func TestCheck_ExactBytes(t *testing.T) {
	ensureNormalMode(t)

	// A trailing newline is a real difference: snapshots are raw bytes, nothing is normalized.
	path := filepath.Join(t.TempDir(), "raw.snap")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	require.ErrorIs(t, snapcheck.CheckNoDiff("hello\n", path), snapcheck.ErrDifference)

	// Created files hold the exact bytes of the actual string.
	path = filepath.Join(t.TempDir(), "exact.snap")
	require.ErrorIs(t, snapcheck.CheckNoDiff("a\r\nb\n", path), snapcheck.ErrCreated)
	require.Equal(t, "a\r\nb\n", readFile(t, path))
}

func TestCheck_UpdateModeFromEnvPresence(t *testing.T) {
	// Presence with an empty value activates update mode.
	t.Setenv(snapcheck.UpdateEnvVar, "")

	path := filepath.Join(t.TempDir(), "env.snap")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	err := snapcheck.CheckNoDiff("new", path)
	require.ErrorIs(t, err, snapcheck.ErrUpdated)
	require.Equal(t, "new", readFile(t, path))
}

func TestChecker_UpdateWithEqualContentDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "same.snap")
	require.NoError(t, os.WriteFile(path, []byte("stable"), 0o644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))
	before, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, snapcheck.Checker{Update: true}.Check("stable", path))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.Equal(t, "stable", readFile(t, path))
}

func TestChecker_DiffOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff.snap")
	require.NoError(t, os.WriteFile(path, []byte("old line\nshared\n"), 0o644))

	var buf bytes.Buffer
	checker := snapcheck.Checker{ShowDiff: true, Output: &buf, Color: snapcheck.ColorNever}

	err := checker.Check("new line\nshared\n", path)
	require.ErrorIs(t, err, snapcheck.ErrDifference)
	assert.Contains(t, buf.String(), "-old line")
	assert.Contains(t, buf.String(), "+new line")
	assert.Contains(t, buf.String(), " shared")
	assert.NotContains(t, buf.String(), "\x1b[", "ColorNever must suppress ANSI escapes")
}

func TestChecker_DiffOnCreateShowsNewBaseline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "created.snap")

	var buf bytes.Buffer
	checker := snapcheck.Checker{ShowDiff: true, Output: &buf, Color: snapcheck.ColorNever}

	err := checker.Check("hello world", path)
	require.ErrorIs(t, err, snapcheck.ErrCreated)
	assert.Contains(t, buf.String(), "+hello world")
}

func TestChecker_NoDiffOutputWhenDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.snap")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	var buf bytes.Buffer
	checker := snapcheck.Checker{Output: &buf}

	require.ErrorIs(t, checker.Check("new", path), snapcheck.ErrDifference)
	assert.Empty(t, buf.String())
}

func TestCheck_ReadError(t *testing.T) {
	ensureNormalMode(t)

	// A directory passes the existence check but cannot be read as a snapshot.
	dir := t.TempDir()
	err := snapcheck.CheckNoDiff("anything", dir)

	var ioErr *snapcheck.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, snapcheck.OpRead, ioErr.Op)
	assert.Equal(t, dir, ioErr.Path)
	assert.Error(t, ioErr.Unwrap())
}

func TestCheck_OpenErrorOnCreate(t *testing.T) {
	ensureNormalMode(t)

	// The parent of path is a regular file, so both stat and create fail.
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o644))
	path := filepath.Join(parent, "child.snap")

	err := snapcheck.CheckNoDiff("anything", path)

	var ioErr *snapcheck.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, snapcheck.OpOpen, ioErr.Op)
	assert.Equal(t, path, ioErr.Path)
}

func TestChecker_UpdateSurfacesIOErrors(t *testing.T) {
	// A failed read must not be masked as a successful update: no write is attempted.
	dir := t.TempDir()
	err := snapcheck.Checker{Update: true}.Check("anything", dir)

	var ioErr *snapcheck.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, snapcheck.OpRead, ioErr.Op)
}

func TestOutcomes_AreDistinct(t *testing.T) {
	assert.False(t, errors.Is(snapcheck.ErrCreated, snapcheck.ErrUpdated))
	assert.False(t, errors.Is(snapcheck.ErrCreated, snapcheck.ErrDifference))
	assert.False(t, errors.Is(snapcheck.ErrUpdated, snapcheck.ErrDifference))

	ioErr := &snapcheck.IOError{Op: snapcheck.OpWrite, Path: "s.snap", Err: errors.New("disk full")}
	assert.Equal(t, "snapcheck: write s.snap: disk full", ioErr.Error())
}
