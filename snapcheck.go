package snapcheck

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/codalotl/snapcheck/internal/linediff"
	"github.com/codalotl/snapcheck/internal/tracelog"
	"golang.org/x/term"
)

// UpdateEnvVar names the environment variable that switches the package-level entry points into update mode. Presence activates it — any value, including the
// empty string.
const UpdateEnvVar = "UPDATE_SNAPSHOTS"

// diffContext is how many unchanged lines surround each change group in rendered diffs.
const diffContext = 3

// ColorMode controls ANSI color in rendered diffs.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when the output is a terminal
	ColorNever                   // never color
	ColorAlways                  // always color
)

// Checker compares actual strings against snapshot files. The zero value compares in normal mode with diff rendering off; see Check and CheckNoDiff for the
// environment-driven entry points.
type Checker struct {
	Update   bool      // overwrite a mismatched snapshot and fail with ErrUpdated instead of ErrDifference
	ShowDiff bool      // render a diff to Output on mismatch (and on create, against the empty string)
	Output   io.Writer // diff destination; nil means os.Stderr
	Color    ColorMode // color policy for rendered diffs
}

// Check compares actual against the snapshot at path, rendering a diff to stderr on mismatch. Update mode is taken from the presence of UPDATE_SNAPSHOTS.
func Check(actual string, path string) error {
	return Checker{Update: updateFromEnv(), ShowDiff: true}.Check(actual, path)
}

// CheckNoDiff is Check without diff rendering.
func CheckNoDiff(actual string, path string) error {
	return Checker{Update: updateFromEnv()}.Check(actual, path)
}

func updateFromEnv() bool {
	_, ok := os.LookupEnv(UpdateEnvVar)
	return ok
}

// Check compares actual against the snapshot at path.
//
// A missing snapshot is created from actual and the call fails with ErrCreated. An existing snapshot is read and compared: equal content succeeds; differing
// content fails with ErrDifference, or — when c.Update is set — overwrites the file and fails with ErrUpdated. Open/read/write failures return *IOError.
func (c Checker) Check(actual string, path string) error {
	if _, err := os.Stat(path); err != nil {
		// Missing (or unstattable) snapshot: establish the baseline. Open failures surface from create.
		tracelog.Log("check %s: no snapshot, creating", path)
		return c.create(actual, path)
	}
	if c.Update {
		tracelog.Log("check %s: compare-and-update", path)
		return c.checkAndUpdate(actual, path)
	}
	tracelog.Log("check %s: compare", path)
	return c.check(actual, path)
}

// create writes actual as the new snapshot and fails with ErrCreated so the baseline gets reviewed rather than silently accepted.
func (c Checker) create(actual string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: OpOpen, Path: path, Err: err}
	}
	defer f.Close()
	if _, err := f.WriteString(actual); err != nil {
		return &IOError{Op: OpWrite, Path: path, Err: err}
	}

	// Render the new content against nothing so the just-established baseline is visible where the forced failure is reported.
	_ = c.compare(actual, "")
	return ErrCreated
}

// check reads the snapshot and compares it against actual.
func (c Checker) check(actual string, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &IOError{Op: OpOpen, Path: path, Err: err}
	}
	defer f.Close()
	expected, err := io.ReadAll(f)
	if err != nil {
		return &IOError{Op: OpRead, Path: path, Err: err}
	}
	return c.compare(actual, string(expected))
}

// checkAndUpdate compares like check, but a mismatch overwrites the snapshot with actual and fails with ErrUpdated. Equal content performs no write. I/O
// failures from the comparison surface as-is; only a genuine mismatch triggers the overwrite.
func (c Checker) checkAndUpdate(actual string, path string) error {
	switch err := c.check(actual, path); {
	case err == nil:
		return nil
	case !errors.Is(err, ErrDifference):
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return &IOError{Op: OpOpen, Path: path, Err: err}
	}
	defer f.Close()
	if _, err := f.WriteString(actual); err != nil {
		return &IOError{Op: OpWrite, Path: path, Err: err}
	}
	return ErrUpdated
}

// compare diffs actual against expected. Distance zero succeeds; otherwise the diff is rendered when c.ShowDiff is set and the result is ErrDifference.
func (c Checker) compare(actual, expected string) error {
	cs := linediff.Compute(expected, actual)
	if cs.Distance() == 0 {
		return nil
	}
	if c.ShowDiff {
		c.writeDiff(cs)
	}
	return ErrDifference
}

// writeDiff renders cs to the configured output. Color and width clipping follow the terminal when the output is one, subject to c.Color.
func (c Checker) writeDiff(cs linediff.Changeset) {
	w := c.Output
	if w == nil {
		w = os.Stderr
	}

	color := false
	width := 0
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		color = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = cols
		}
	}
	switch c.Color {
	case ColorAlways:
		color = true
	case ColorNever:
		color = false
	}

	rendered := cs.Render(linediff.RenderOptions{Color: color, Context: diffContext, MaxWidth: width})
	if rendered != "" {
		fmt.Fprintln(w, rendered)
	}
}
